package repositories

import (
	"katalog/internal/models"
	"katalog/internal/query"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	FindByID(id string) (*models.Category, error)
	FindByTitleOrValue(title, value string) (*models.Category, error)
	FindMany(preds []query.Predicate, page query.Resolved) ([]models.Category, int64, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) (int64, error)
}
