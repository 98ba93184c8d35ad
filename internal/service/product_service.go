package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockpile/stockpile/internal/cache"
	"github.com/stockpile/stockpile/internal/logger"
	"github.com/stockpile/stockpile/internal/models"
	"github.com/stockpile/stockpile/internal/storage"
)

const productListKey = "products:all"

// ProductService fronts the product store with an optional read-through
// cache for the full list. Mutations invalidate before returning, so a
// read issued after a mutation's response reflects it. A read racing a
// mutation can re-cache the pre-mutation list; that staleness is bounded
// by the cache TTL.
type ProductService struct {
	products storage.ProductStorage
	cache    *cache.Cache
	log      *logger.Logger
}

func NewProductService(products storage.ProductStorage, c *cache.Cache) *ProductService {
	return &ProductService{
		products: products,
		cache:    c,
		log:      logger.New("product-service"),
	}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		var cached []models.Product
		if s.cache.GetJSON(ctx, productListKey, &cached) {
			return cached, nil
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, productListKey, products); err != nil {
			s.log.Warn("Failed to cache product list: %v", err)
		}
	}

	return products, nil
}

func (s *ProductService) Search(ctx context.Context, name string) ([]models.Product, error) {
	return s.products.Search(ctx, name)
}

func (s *ProductService) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Create is only reachable from the seeder; the API exposes no product
// creation endpoint.
func (s *ProductService) Create(ctx context.Context, name string, price float64, category string, inStock bool) (*models.Product, error) {
	product := &models.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     price,
		Category:  category,
		InStock:   inStock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(ctx)
	return product, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productListKey); err != nil {
		s.log.Warn("Failed to invalidate product cache: %v", err)
	}
}
