package repositories

import (
	"katalog/internal/models"
	"katalog/internal/query"
)

// ProductRepository defines the interface for product data access.
// Lookup methods return (nil, nil) when no row matches; services decide
// whether absence is an error.
type ProductRepository interface {
	FindByID(id string) (*models.Product, error)
	FindFirst(preds []query.Predicate) (*models.Product, error)
	FindMany(preds []query.Predicate, page query.Resolved) ([]models.Product, int64, error)
	CountByCategory(categoryID string) (int64, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) (int64, error)
	DeleteMany(ids []string) (int64, error)
}
