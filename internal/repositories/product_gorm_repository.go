package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"katalog/internal/models"
	"katalog/internal/query"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// FindFirst retrieves the first product matching the predicates.
func (r *GORMProductRepository) FindFirst(preds []query.Predicate) (*models.Product, error) {
	var product models.Product
	tx := applyPredicates(r.db.Model(&models.Product{}), preds)
	if err := tx.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindMany retrieves one page of products matching the predicates, plus the
// total count of the same predicate independent of the page window.
func (r *GORMProductRepository) FindMany(preds []query.Predicate, page query.Resolved) ([]models.Product, int64, error) {
	base := applyPredicates(r.db.Model(&models.Product{}), preds)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := applyPage(base, page).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// CountByCategory counts the products referencing a category.
func (r *GORMProductRepository) CountByCategory(categoryID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products in category %s: %w", categoryID, err)
	}
	return count, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return r.db.Create(product).Error
}

// Update persists all fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product by its ID, reporting the rows affected.
func (r *GORMProductRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteMany removes a set of products by ID, reporting the rows affected.
func (r *GORMProductRepository) DeleteMany(ids []string) (int64, error) {
	res := r.db.Delete(&models.Product{}, "id IN ?", ids)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete products: %w", res.Error)
	}
	return res.RowsAffected, nil
}
