package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/query"
	"katalog/internal/repositories"
)

var categoryFilterSchema = query.Schema{
	"title": {Op: query.OpContains},
	"value": {Op: query.OpEquals},
}

// CategoryFilterKeys returns the query parameters handlers should pick as
// category filters.
func CategoryFilterKeys() []string {
	return categoryFilterSchema.Keys()
}

var (
	slugWhitespaceRe = regexp.MustCompile(`\s+`)
	slugStripRe      = regexp.MustCompile(`[^a-z0-9_]`)
)

// SlugifyTitle derives a category value from its title: lowercased,
// whitespace converted to underscores, everything else outside [a-z0-9_]
// stripped. The derivation is deterministic and idempotent.
func SlugifyTitle(title string) string {
	slug := strings.ToLower(title)
	slug = slugWhitespaceRe.ReplaceAllString(slug, "_")
	return slugStripRe.ReplaceAllString(slug, "")
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo        repositories.CategoryRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
	validate    *validator.Validate
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *CategoryService {
	return &CategoryService{
		repo:        repo,
		productRepo: productRepo,
		publisher:   publisher,
		validate:    validator.New(),
	}
}

// CreateCategory derives the value from the title (unless explicitly
// overridden) and rejects duplicate titles or values.
func (s *CategoryService) CreateCategory(input models.CreateCategoryInput) (*models.Category, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	value := input.Value
	if value == "" {
		value = SlugifyTitle(input.Title)
	}
	if value == "" {
		return nil, apperrors.Validation("title yields an empty value")
	}

	existing, err := s.repo.FindByTitleOrValue(input.Title, value)
	if err != nil {
		return nil, apperrors.Internal("failed to check category uniqueness", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("Category with this title or value already exists")
	}

	category := &models.Category{
		Title:     input.Title,
		Value:     value,
		Thumbnail: input.Thumbnail,
	}
	if err := s.repo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Category with this title or value already exists")
		}
		return nil, apperrors.Internal("failed to create category", err)
	}

	publishCatalogEvent(s.publisher, models.EventCategoryCreated, category.ID, category)
	return category, nil
}

// GetAllCategory returns one page of categories matching the filters.
func (s *CategoryService) GetAllCategory(filters map[string]string, opts query.Options) (*models.CategoryPage, error) {
	preds, err := query.Compile(categoryFilterSchema, filters)
	if err != nil {
		return nil, err
	}
	page, err := query.Resolve(opts)
	if err != nil {
		return nil, err
	}

	categories, total, err := s.repo.FindMany(preds, page)
	if err != nil {
		return nil, apperrors.Internal("failed to list categories", err)
	}
	return &models.CategoryPage{
		Data: categories,
		Meta: models.PageMeta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

// GetSingleCategory retrieves one category by ID.
func (s *CategoryService) GetSingleCategory(id string) (*models.Category, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.Internal("failed to get category", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("category not found!!")
	}
	return category, nil
}

// UpdateCategory applies a partial update, re-deriving the value only when
// the title is part of the update.
func (s *CategoryService) UpdateCategory(id string, input models.UpdateCategoryInput) (*models.Category, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.Internal("failed to get category", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("category not found!!")
	}

	if input.Title != nil {
		value := SlugifyTitle(*input.Title)
		if value == "" {
			return nil, apperrors.Validation("title yields an empty value")
		}
		existing, err := s.repo.FindByTitleOrValue(*input.Title, value)
		if err != nil {
			return nil, apperrors.Internal("failed to check category uniqueness", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.Conflict("Category with this title or value already exists")
		}
		category.Title = *input.Title
		category.Value = value
	}
	if input.Thumbnail != nil {
		category.Thumbnail = *input.Thumbnail
	}

	if err := s.repo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Category with this title or value already exists")
		}
		return nil, apperrors.Internal("failed to update category", err)
	}

	publishCatalogEvent(s.publisher, models.EventCategoryUpdated, category.ID, category)
	return category, nil
}

// DeleteCategory removes a category, refusing while products still
// reference it.
func (s *CategoryService) DeleteCategory(id string) (*models.Category, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, apperrors.Internal("failed to get category", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("category not found!!")
	}

	inUse, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return nil, apperrors.Internal("failed to check category references", err)
	}
	if inUse > 0 {
		return nil, apperrors.Constraint("Category is still referenced by %d product(s)", inUse)
	}

	affected, err := s.repo.Delete(id)
	if err != nil {
		return nil, apperrors.Internal("failed to delete category", err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("category not found!!")
	}

	publishCatalogEvent(s.publisher, models.EventCategoryDeleted, id, nil)
	return category, nil
}
