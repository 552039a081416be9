package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/models"
	"katalog/internal/query"
	"katalog/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Get("/", h.HandleGetAllCategory)
	categoryRoutes.Get("/:id", h.HandleGetSingleCategory)
	categoryRoutes.Patch("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var input models.CreateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create category body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	category, err := h.service.CreateCategory(input)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Category created", category)
}

// HandleGetAllCategory lists categories with filters and pagination.
func (h *CategoryHandler) HandleGetAllCategory(c *fiber.Ctx) error {
	filters := pickFilters(c, services.CategoryFilterKeys())
	opts := query.Options{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	page, err := h.service.GetAllCategory(filters, opts)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, "All category fetched", page.Meta, page.Data)
}

// HandleGetSingleCategory retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetSingleCategory(c *fiber.Ctx) error {
	category, err := h.service.GetSingleCategory(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Category fetched", category)
}

// HandleUpdateCategory applies a partial update to an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var input models.UpdateCategoryInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update category body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	category, err := h.service.UpdateCategory(c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Category updated", category)
}

// HandleDeleteCategory deletes a category that no product references.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	category, err := h.service.DeleteCategory(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Category deleted", category)
}
