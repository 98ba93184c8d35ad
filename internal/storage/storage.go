package storage

import (
	"context"
	"errors"

	"github.com/stockpile/stockpile/internal/models"
	usermodel "github.com/stockpile/stockpile/internal/models/user"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

type ProductStorage interface {
	Create(ctx context.Context, product *models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, name string) ([]models.Product, error)
	Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// UserStorage lookups return (nil, nil) when no user matches.
type UserStorage interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*usermodel.User, error)
	GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, userID string) (*usermodel.User, error)
}
