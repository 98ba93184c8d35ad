package validation

import (
	"errors"

	"github.com/stockpile/stockpile/internal/models"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrNameEmpty        = errors.New("name cannot be empty")
	ErrNegativePrice    = errors.New("price cannot be negative")
)

func ValidateCredentials(username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// ValidateProductPatch checks only the fields the patch actually sets.
func ValidateProductPatch(req *models.UpdateProductRequest) error {
	if req.Name != nil && *req.Name == "" {
		return ErrNameEmpty
	}
	if req.Price != nil && *req.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
