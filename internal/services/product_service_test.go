package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/query"
	"katalog/internal/services"
)

func floatPtr(f float64) *float64 { return &f }

func intPtr(n int) *int { return &n }

func validCreateInput() models.CreateProductInput {
	return models.CreateProductInput{
		Name:       "Mechanical Keyboard",
		Price:      200.0,
		Quantity:   "pcs",
		Stock:      10,
		CategoryID: "6f1f39a8-0f83-4f1e-95b3-0c2a2e1a9a11",
	}
}

func TestProductService_CreateProduct_ComputesFinalPrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	input := validCreateInput()
	input.Discount = floatPtr(25)

	mockCategories.On("FindByID", input.CategoryID).Return(&models.Category{ID: input.CategoryID}, nil).Once()
	mockRepo.On("FindFirst", mock.Anything).Return(nil, nil).Once()

	var created *models.Product
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.Product)
	}).Return(nil).Once()

	view, err := service.CreateProduct(input)

	require.NoError(t, err)
	require.NotNil(t, created)
	// finalPrice = price * (1 - discount/100), exactly
	assert.True(t, created.FinalPrice.Equal(decimal.NewFromInt(150)),
		"expected 150, got %s", created.FinalPrice)
	assert.Equal(t, 150.0, view.FinalPrice)
	assert.Equal(t, 200.0, view.Price)
	mockRepo.AssertExpectations(t)
	mockCategories.AssertExpectations(t)
}

func TestProductService_CreateProduct_NoDiscountKeepsPrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	input := validCreateInput()

	mockCategories.On("FindByID", input.CategoryID).Return(&models.Category{ID: input.CategoryID}, nil).Once()
	mockRepo.On("FindFirst", mock.Anything).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	view, err := service.CreateProduct(input)

	require.NoError(t, err)
	assert.Equal(t, view.Price, view.FinalPrice)
	assert.Nil(t, view.Discount)
}

func TestProductService_CreateProduct_SKUIsDeterministic(t *testing.T) {
	input := validCreateInput()

	skus := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		mockRepo := new(MockProductRepository)
		mockCategories := new(MockCategoryRepository)
		service := services.NewProductService(mockRepo, mockCategories, nil)

		mockCategories.On("FindByID", input.CategoryID).Return(&models.Category{ID: input.CategoryID}, nil).Once()
		mockRepo.On("FindFirst", mock.Anything).Return(nil, nil).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

		view, err := service.CreateProduct(input)
		require.NoError(t, err)
		require.NotEmpty(t, view.SKU)
		skus = append(skus, view.SKU)
	}

	assert.Equal(t, skus[0], skus[1], "same category and name must yield the same SKU")
}

func TestProductService_CreateProduct_UnknownCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	input := validCreateInput()
	mockCategories.On("FindByID", input.CategoryID).Return(nil, nil).Once()

	_, err := service.CreateProduct(input)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProduct_DuplicateNameInCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	input := validCreateInput()
	mockCategories.On("FindByID", input.CategoryID).Return(&models.Category{ID: input.CategoryID}, nil).Once()
	mockRepo.On("FindFirst", mock.Anything).Return(&models.Product{ID: "existing"}, nil).Once()

	_, err := service.CreateProduct(input)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestProductService_CreateProduct_StoreLevelDuplicateBecomesConflict(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	input := validCreateInput()
	mockCategories.On("FindByID", input.CategoryID).Return(&models.Category{ID: input.CategoryID}, nil).Once()
	// Fast path sees nothing; the unique index still fires on insert.
	mockRepo.On("FindFirst", mock.Anything).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(gorm.ErrDuplicatedKey).Once()

	_, err := service.CreateProduct(input)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestProductService_CreateProduct_InvalidInput(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	input := validCreateInput()
	input.Price = 0

	_, err := service.CreateProduct(input)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockCategories.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestProductService_UpdateProduct_RecomputesFinalPriceFromStoredDiscount(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	discount := decimal.NewFromInt(10)
	stored := &models.Product{
		ID:         "prod-1",
		Name:       "Laptop",
		Price:      decimal.NewFromInt(100),
		Discount:   &discount,
		FinalPrice: decimal.NewFromInt(90),
		CategoryID: "cat-1",
	}

	mockRepo.On("FindByID", "prod-1").Return(stored, nil).Once()
	var updated *models.Product
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		updated = args.Get(0).(*models.Product)
	}).Return(nil).Once()

	view, err := service.UpdateProduct("prod-1", models.UpdateProductInput{Price: floatPtr(200)})

	require.NoError(t, err)
	require.NotNil(t, updated)
	// New price, stored discount: 200 * (1 - 10/100) = 180
	assert.True(t, updated.FinalPrice.Equal(decimal.NewFromInt(180)),
		"expected 180, got %s", updated.FinalPrice)
	assert.Equal(t, 180.0, view.FinalPrice)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	mockRepo.On("FindByID", "missing").Return(nil, nil).Once()

	_, err := service.UpdateProduct("missing", models.UpdateProductInput{Stock: intPtr(5)})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestProductService_GetAllProduct_PaginatesAndCounts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	rows := []models.Product{
		{ID: "p-11", Name: "Product K", Price: decimal.NewFromInt(10), FinalPrice: decimal.NewFromInt(10)},
		{ID: "p-12", Name: "Product L", Price: decimal.NewFromInt(20), FinalPrice: decimal.NewFromInt(20)},
	}
	mockRepo.On("FindMany",
		mock.MatchedBy(func(preds []query.Predicate) bool {
			return len(preds) == 1 && preds[0].Field == "name" && preds[0].Op == query.OpContains
		}),
		mock.MatchedBy(func(page query.Resolved) bool {
			return page.Skip == 10 && page.Limit == 10 && page.Page == 2
		}),
	).Return(rows, int64(12), nil).Once()

	result, err := service.GetAllProduct(
		map[string]string{"name": "product"},
		query.Options{Page: "2", Limit: "10"},
	)

	require.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, int64(12), result.Meta.Total)
	assert.Equal(t, 2, result.Meta.Page)
	assert.Equal(t, 10, result.Meta.Limit)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetSingleProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	mockRepo.On("FindByID", "missing").Return(nil, nil).Once()

	_, err := service.GetSingleProduct("missing")

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestProductService_DeleteMultipleProducts_ZeroAffectedIsNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	mockRepo.On("DeleteMany", []string{"a", "b"}).Return(int64(0), nil).Once()

	_, err := service.DeleteMultipleProducts([]string{"a", "b"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestProductService_DeleteMultipleProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewProductService(mockRepo, mockCategories, nil)

	mockRepo.On("DeleteMany", []string{"a", "b"}).Return(int64(2), nil).Once()

	count, err := service.DeleteMultipleProducts([]string{"a", "b"})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
