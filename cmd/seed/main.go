// Seeds the catalog with a starter set of products. Safe to run
// repeatedly: it exits without writing if any products already exist.
package main

import (
	"context"
	"time"

	"github.com/stockpile/stockpile/internal/config"
	"github.com/stockpile/stockpile/internal/database"
	"github.com/stockpile/stockpile/internal/logger"
	"github.com/stockpile/stockpile/internal/service"
	"github.com/stockpile/stockpile/internal/storage"
)

type seedProduct struct {
	name     string
	price    float64
	category string
	inStock  bool
}

var catalog = []seedProduct{
	{"Laptop", 999.99, "Electronics", true},
	{"Wireless Mouse", 29.99, "Electronics", true},
	{"Mechanical Keyboard", 89.99, "Electronics", false},
	{"Standing Desk", 349.00, "Furniture", true},
	{"Office Chair", 199.50, "Furniture", true},
	{"Desk Lamp", 24.99, "Furniture", false},
	{"Notebook", 4.99, "Stationery", true},
	{"Fountain Pen", 39.99, "Stationery", true},
}

func main() {
	log := logger.New("catalog-seed")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, cfg.Database.DSN); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}

	products := service.NewProductService(storage.NewPostgresProductStorage(db), nil)

	existing, err := products.List(ctx)
	if err != nil {
		log.Fatal("Failed to check existing products: %v", err)
	}
	if len(existing) > 0 {
		log.Info("Catalog already has %d products, nothing to do", len(existing))
		return
	}

	for _, p := range catalog {
		if _, err := products.Create(ctx, p.name, p.price, p.category, p.inStock); err != nil {
			log.Fatal("Failed to seed %q: %v", p.name, err)
		}
	}
	log.Info("Seeded %d products", len(catalog))
}
