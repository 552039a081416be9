package handlers

import (
	"github.com/gofiber/fiber/v2"

	"katalog/internal/apperrors"
	"katalog/internal/models"
)

// envelope is the response body shape shared by all endpoints.
type envelope struct {
	StatusCode int              `json:"statusCode"`
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Meta       *models.PageMeta `json:"meta,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(envelope{
		StatusCode: status,
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

func respondPage(c *fiber.Ctx, message string, meta models.PageMeta, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(envelope{
		StatusCode: fiber.StatusOK,
		Success:    true,
		Message:    message,
		Meta:       &meta,
		Data:       data,
	})
}

// respondError maps a service error to its HTTP status. Business-rule
// errors surface their message verbatim; everything else is reported as an
// internal failure with the cause preserved in the message.
func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	return c.Status(status).JSON(envelope{
		StatusCode: status,
		Success:    false,
		Message:    err.Error(),
	})
}

// pickFilters extracts the given query parameters into a filter mapping,
// skipping absent ones.
func pickFilters(c *fiber.Ctx, keys []string) map[string]string {
	filters := make(map[string]string)
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}
	return filters
}
