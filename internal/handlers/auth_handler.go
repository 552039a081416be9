package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/models"
	"katalog/internal/services"
)

const refreshCookieName = "refreshToken"

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService   *services.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/refresh-token", h.HandleRefresh)
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var input models.SignupInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	user, err := h.authService.Signup(input)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusCreated, "User created successfully!", user)
}

// HandleLogin handles user login, sets the refresh token as an httpOnly
// cookie and returns both tokens.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return respond(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	tokens, err := h.authService.Login(input)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    tokens.RefreshToken,
		HTTPOnly: true,
		Secure:   h.secureCookies,
		// The cookie lives exactly as long as the token it carries.
		Expires: time.Now().Add(h.authService.RefreshTTL()),
	})

	return respond(c, fiber.StatusOK, "User logged in successfully !", tokens)
}

// RefreshRequest is the body for the refresh-token endpoint; the cookie is
// used when the body is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// HandleRefresh issues a fresh access token from a valid refresh token.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	// A missing body is fine when the cookie is set.
	_ = c.BodyParser(&req)
	if req.RefreshToken == "" {
		req.RefreshToken = c.Cookies(refreshCookieName)
	}
	if req.RefreshToken == "" {
		return respond(c, fiber.StatusBadRequest, "refresh token is required", nil)
	}

	accessToken, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Access token refreshed", fiber.Map{"accessToken": accessToken})
}
