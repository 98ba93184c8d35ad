package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	usermodel "github.com/stockpile/stockpile/internal/models/user"
)

type MemoryUserStorage struct {
	mu    sync.RWMutex
	users map[string]*usermodel.User // keyed by username
}

func NewMemoryUserStorage() *MemoryUserStorage {
	return &MemoryUserStorage{
		users: make(map[string]*usermodel.User),
	}
}

func (s *MemoryUserStorage) CreateUser(ctx context.Context, username, passwordHash string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, ErrDuplicateUsername
	}

	now := time.Now()
	user := &usermodel.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[username] = user

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStorage) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[username]
	if !exists {
		return nil, nil
	}

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ID == userID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}
