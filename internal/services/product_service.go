package services

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/query"
	"katalog/internal/repositories"
)

// productFilterSchema classifies the filterable product fields, resolved
// once at startup. Name and SKU are substring searches; price compares
// numerically; isActive compares as a boolean; the rest compare exactly.
var productFilterSchema = query.Schema{
	"name":       {Op: query.OpContains},
	"sku":        {Op: query.OpContains},
	"price":      {Op: query.OpNumericEquals},
	"quantity":   {Op: query.OpEquals},
	"categoryId": {Column: "category_id", Op: query.OpEquals},
	"isActive":   {Column: "is_active", Op: query.OpBoolEquals},
}

// ProductFilterKeys returns the query parameters handlers should pick as
// product filters.
func ProductFilterKeys() []string {
	return productFilterSchema.Keys()
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	publisher    EventPublisher
	validate     *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
		validate:     validator.New(),
	}
}

// CreateProduct validates the input, checks the category reference and
// per-category name uniqueness, computes the final price and SKU, and
// persists the product.
func (s *ProductService) CreateProduct(input models.CreateProductInput) (*models.ProductView, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(input.CategoryID)
	if err != nil {
		return nil, apperrors.Internal("failed to check category", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("Invalid category. Category does not exist.")
	}

	// Fast path for a better error message; the unique index on
	// (name, category_id) is the authoritative guard.
	existing, err := s.repo.FindFirst([]query.Predicate{
		{Field: "name", Op: query.OpEquals, Value: input.Name},
		{Field: "category_id", Op: query.OpEquals, Value: input.CategoryID},
	})
	if err != nil {
		return nil, apperrors.Internal("failed to check product uniqueness", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("Product with this name already exists in this category.")
	}

	price := decimal.NewFromFloat(input.Price).Round(2)
	var discount *decimal.Decimal
	if input.Discount != nil {
		d := decimal.NewFromFloat(*input.Discount).Round(2)
		discount = &d
	}

	product := &models.Product{
		Name:        input.Name,
		Price:       price,
		Discount:    discount,
		FinalPrice:  computeFinalPrice(price, discount),
		Quantity:    input.Quantity,
		Description: input.Description,
		Stock:       input.Stock,
		Images:      input.Images,
		SKU:         generateSKU(input.CategoryID, input.Name),
		IsActive:    true,
		CategoryID:  input.CategoryID,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Product with this name already exists in this category.")
		}
		return nil, apperrors.Internal("failed to create product", err)
	}

	publishCatalogEvent(s.publisher, models.EventProductCreated, product.ID, product.View())

	view := product.View()
	return &view, nil
}

// UpdateProduct applies a partial update. When price or discount changes the
// final price is recomputed from the updated value where given and the
// stored value otherwise.
func (s *ProductService) UpdateProduct(id string, input models.UpdateProductInput) (*models.ProductView, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.Internal("failed to get product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found!!")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if input.Price != nil || input.Discount != nil {
		if input.Price != nil {
			product.Price = decimal.NewFromFloat(*input.Price).Round(2)
		}
		if input.Discount != nil {
			d := decimal.NewFromFloat(*input.Discount).Round(2)
			product.Discount = &d
		}
		product.FinalPrice = computeFinalPrice(product.Price, product.Discount)
	}

	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Product with this name already exists in this category.")
		}
		return nil, apperrors.Internal("failed to update product", err)
	}

	publishCatalogEvent(s.publisher, models.EventProductUpdated, product.ID, product.View())

	view := product.View()
	return &view, nil
}

// GetAllProduct returns one page of products matching the filters, with the
// total computed against the same predicate.
func (s *ProductService) GetAllProduct(filters map[string]string, opts query.Options) (*models.ProductPage, error) {
	preds, err := query.Compile(productFilterSchema, filters)
	if err != nil {
		return nil, err
	}
	page, err := query.Resolve(opts)
	if err != nil {
		return nil, err
	}

	products, total, err := s.repo.FindMany(preds, page)
	if err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}

	views := make([]models.ProductView, 0, len(products))
	for i := range products {
		views = append(views, products[i].View())
	}
	return &models.ProductPage{
		Data: views,
		Meta: models.PageMeta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

// GetSingleProduct retrieves one product by ID.
func (s *ProductService) GetSingleProduct(id string) (*models.ProductView, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.Internal("failed to get product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found!!")
	}
	view := product.View()
	return &view, nil
}

// DeleteSingleProduct removes one product by ID and returns its last state.
func (s *ProductService) DeleteSingleProduct(id string) (*models.ProductView, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.Internal("failed to get product", err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found!!")
	}

	affected, err := s.repo.Delete(id)
	if err != nil {
		return nil, apperrors.Internal("failed to delete product", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("product not found!!")
	}

	publishCatalogEvent(s.publisher, models.EventProductDeleted, id, nil)

	view := product.View()
	return &view, nil
}

// DeleteMultipleProducts removes a set of products. Zero affected rows is
// treated as not-found.
func (s *ProductService) DeleteMultipleProducts(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.Validation("at least one product id is required")
	}

	affected, err := s.repo.DeleteMany(ids)
	if err != nil {
		return 0, apperrors.Internal("failed to delete products", err)
	}
	if affected == 0 {
		return 0, apperrors.NotFound("no products found for the given ids")
	}

	for _, id := range ids {
		publishCatalogEvent(s.publisher, models.EventProductDeleted, id, nil)
	}
	return affected, nil
}

// computeFinalPrice applies the discount percentage to the price, exactly,
// in fixed-point arithmetic.
func computeFinalPrice(price decimal.Decimal, discount *decimal.Decimal) decimal.Decimal {
	if discount == nil {
		return price
	}
	hundred := decimal.NewFromInt(100)
	return price.Sub(price.Mul(*discount).Div(hundred)).Round(2)
}

// generateSKU derives a deterministic SKU from the category and product
// name: a short prefix of the name plus a stable hash of the pair.
func generateSKU(categoryID, name string) string {
	prefix := make([]rune, 0, 3)
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			prefix = append(prefix, unicode.ToUpper(r))
			if len(prefix) == 3 {
				break
			}
		}
	}
	if len(prefix) == 0 {
		prefix = []rune{'S', 'K', 'U'}
	}

	sum := sha1.Sum([]byte(categoryID + ":" + strings.ToLower(name)))
	return string(prefix) + "-" + strings.ToUpper(hex.EncodeToString(sum[:4]))
}
