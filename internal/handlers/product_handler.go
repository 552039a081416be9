package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/models"
	"katalog/internal/query"
	"katalog/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetAllProduct)
	productRoutes.Get("/:id", h.HandleGetSingleProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteSingleProduct)
	productRoutes.Delete("/", h.HandleDeleteMultipleProducts)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Product created", product)
}

// HandleGetAllProduct lists products with filters and pagination.
func (h *ProductHandler) HandleGetAllProduct(c *fiber.Ctx) error {
	filters := pickFilters(c, services.ProductFilterKeys())
	opts := query.Options{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	page, err := h.service.GetAllProduct(filters, opts)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, "Products fetched", page.Meta, page.Data)
}

// HandleGetSingleProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetSingleProduct(c *fiber.Ctx) error {
	product, err := h.service.GetSingleProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product fetched", product)
}

// HandleUpdateProduct applies a partial update to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var input models.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	product, err := h.service.UpdateProduct(c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product updated", product)
}

// HandleDeleteSingleProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteSingleProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteSingleProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product deleted", product)
}

// DeleteProductsRequest is the body for bulk product deletion.
type DeleteProductsRequest struct {
	IDs []string `json:"ids"`
}

// HandleDeleteMultipleProducts deletes a set of products by ID.
func (h *ProductHandler) HandleDeleteMultipleProducts(c *fiber.Ctx) error {
	var req DeleteProductsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing delete products body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	count, err := h.service.DeleteMultipleProducts(req.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Products deleted", fiber.Map{"count": count})
}
