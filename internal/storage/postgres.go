package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockpile/stockpile/internal/models"
)

type PostgresProductStorage struct {
	db *pgxpool.Pool
}

func NewPostgresProductStorage(db *pgxpool.Pool) *PostgresProductStorage {
	return &PostgresProductStorage{db: db}
}

func (s *PostgresProductStorage) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, price, category, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.Category,
		product.InStock,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (s *PostgresProductStorage) List(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, price, category, in_stock, created_at, updated_at
		FROM products
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *PostgresProductStorage) Search(ctx context.Context, name string) ([]models.Product, error) {
	query := `
		SELECT id, name, price, category, in_stock, created_at, updated_at
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, escapeLike(name))
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *PostgresProductStorage) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
			price = COALESCE($3, price),
			category = COALESCE($4, category),
			in_stock = COALESCE($5, in_stock),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, price, category, in_stock, created_at, updated_at
	`

	var product models.Product
	err := s.db.QueryRow(ctx, query, id, req.Name, req.Price, req.Category, req.InStock).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Category,
		&product.InStock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == pgx.ErrNoRows || isInvalidUUID(err) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (s *PostgresProductStorage) Delete(ctx context.Context, id string) error {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.Category,
			&p.InStock,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// isInvalidUUID treats a malformed id the same as a missing row, so
// arbitrary path segments come back as not found rather than a server
// error.
func isInvalidUUID(err error) bool {
	return err != nil && strings.Contains(err.Error(), "invalid input syntax for type uuid")
}

// escapeLike neutralizes ILIKE metacharacters so the query term is
// matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
