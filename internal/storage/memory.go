package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stockpile/stockpile/internal/models"
)

// MemoryProductStorage backs tests and local experiments. Records come
// back in insertion order.
type MemoryProductStorage struct {
	mu       sync.RWMutex
	products map[string]*models.Product
	order    []string
}

func NewMemoryProductStorage() *MemoryProductStorage {
	return &MemoryProductStorage{
		products: make(map[string]*models.Product),
	}
}

func (s *MemoryProductStorage) Create(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; !exists {
		s.order = append(s.order, product.ID)
	}
	copied := *product
	s.products[product.ID] = &copied
	return nil
}

func (s *MemoryProductStorage) List(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, *s.products[id])
	}
	return products, nil
}

func (s *MemoryProductStorage) Search(ctx context.Context, name string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	products := make([]models.Product, 0)
	for _, id := range s.order {
		p := s.products[id]
		if strings.Contains(strings.ToLower(p.Name), needle) {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (s *MemoryProductStorage) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.products[id]
	if !exists {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	p.UpdatedAt = time.Now()

	copied := *p
	return &copied, nil
}

func (s *MemoryProductStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return ErrNotFound
	}

	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
