package handlers

import (
	"errors"

	"github.com/clinichq/clinic-backend/internal/config"
	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/middleware"
	"github.com/clinichq/clinic-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, refreshToken, err := h.authService.Signup(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	c.Cookie(BuildRefreshCookie(h.cfg, refreshToken))
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, refreshToken, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Cookie(BuildRefreshCookie(h.cfg, refreshToken))
	return c.JSON(resp)
}

// Refresh exchanges the refresh cookie for a new token pair. The request
// body is a fallback for non-browser clients.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	rawToken := c.Cookies(RefreshCookieName)
	if rawToken == "" {
		var req dto.RefreshRequest
		if err := c.BodyParser(&req); err == nil {
			rawToken = req.RefreshToken
		}
	}

	resp, refreshToken, err := h.authService.Refresh(rawToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Cookie(BuildRefreshCookie(h.cfg, refreshToken))
	return c.JSON(resp)
}

// Logout revokes the refresh token and clears the cookie with matching
// attributes so the browser drops it.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	rawToken := c.Cookies(RefreshCookieName)

	if err := h.authService.Logout(rawToken); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}

	c.Cookie(ClearRefreshCookie(h.cfg))
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.Me(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}

	return c.JSON(user)
}
