package repositories

import (
	"katalog/internal/models"
	"katalog/internal/query"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	FindByFullname(fullname string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindMany(preds []query.Predicate, page query.Resolved) ([]models.User, int64, error)
}
