package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stockpile/stockpile/internal/auth"
	"github.com/stockpile/stockpile/internal/logger"
	"github.com/stockpile/stockpile/internal/models"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthMiddleware gates every product endpoint: missing header is 401,
// a token that fails verification (bad signature or expired) is 403.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	log        *logger.Logger
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		log:        logger.New("auth-middleware"),
	}
}

func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{
				Message: "Access denied. No token provided.",
			})
			return
		}

		token := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[7:]
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.log.Debug("Rejected token: %v", err)
			writeJSON(w, http.StatusForbidden, models.MessageResponse{
				Message: "Invalid token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
