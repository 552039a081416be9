package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"katalog/internal/models"
	"katalog/internal/query"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return r.db.Create(user).Error
}

// FindByFullname retrieves a user by their fullname.
func (r *GORMUserRepository) FindByFullname(fullname string) (*models.User, error) {
	return r.findOne("fullname = ?", fullname)
}

// FindByEmail retrieves a user by their email.
func (r *GORMUserRepository) FindByEmail(email string) (*models.User, error) {
	return r.findOne("email = ?", email)
}

// FindByID retrieves a user by their ID.
func (r *GORMUserRepository) FindByID(id string) (*models.User, error) {
	return r.findOne("id = ?", id)
}

func (r *GORMUserRepository) findOne(cond string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindMany retrieves one page of users plus the total for the predicate.
func (r *GORMUserRepository) FindMany(preds []query.Predicate, page query.Resolved) ([]models.User, int64, error) {
	base := applyPredicates(r.db.Model(&models.User{}), preds)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := applyPage(base, page).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
