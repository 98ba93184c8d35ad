package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockpile/stockpile/internal/auth"
	"github.com/stockpile/stockpile/internal/logger"
	"github.com/stockpile/stockpile/internal/storage"
)

// ErrInvalidCredentials covers both unknown username and wrong password;
// callers must not learn which one failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	users      storage.UserStorage
	jwtManager *auth.JWTManager
	log        *logger.Logger
}

func NewUserService(users storage.UserStorage, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		users:      users,
		jwtManager: jwtManager,
		log:        logger.New("user-service"),
	}
}

func (s *UserService) Register(ctx context.Context, username, password string) error {
	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return storage.ErrDuplicateUsername
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.users.CreateUser(ctx, username, passwordHash); err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("Registered user %s", username)
	return nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, _, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
