package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"katalog/internal/models"
	"katalog/internal/query"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// FindByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) FindByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// FindByTitleOrValue retrieves a category matching either the title or the
// derived value, used for the duplicate fast-path on create.
func (r *GORMCategoryRepository) FindByTitleOrValue(title, value string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "title = ? OR value = ?", title, value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// FindMany retrieves one page of categories plus the total for the predicate.
func (r *GORMCategoryRepository) FindMany(preds []query.Predicate, page query.Resolved) ([]models.Category, int64, error) {
	base := applyPredicates(r.db.Model(&models.Category{}), preds)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	var categories []models.Category
	if err := applyPage(base, page).Find(&categories).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	return r.db.Create(category).Error
}

// Update persists all fields of an existing category.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category by its ID, reporting the rows affected.
func (r *GORMCategoryRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete category %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
