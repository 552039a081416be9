package handlers

import (
	"github.com/gofiber/fiber/v2"

	"katalog/internal/query"
	"katalog/internal/services"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetAllUser)
	userRoutes.Get("/me", h.HandleGetMyProfile)
	userRoutes.Get("/:id", h.HandleGetOneUser)
}

// HandleGetAllUser lists users with filters and pagination.
func (h *UserHandler) HandleGetAllUser(c *fiber.Ctx) error {
	filters := pickFilters(c, services.UserFilterKeys())
	opts := query.Options{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	page, err := h.service.GetAllUser(filters, opts)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, "All user retrieval successfully", page.Meta, page.Data)
}

// HandleGetMyProfile returns the authenticated user's own record.
func (h *UserHandler) HandleGetMyProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	user, err := h.service.GetMyProfile(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Profile data fetched!", user)
}

// HandleGetOneUser retrieves a user by ID.
func (h *UserHandler) HandleGetOneUser(c *fiber.Ctx) error {
	user, err := h.service.GetOneUser(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Profile data fetched!", user)
}
