package handlers

import (
	"github.com/clinichq/clinic-backend/internal/config"
	"github.com/gofiber/fiber/v2"
)

// RefreshCookieName is the cookie carrying the refresh token. It is
// httpOnly and never readable by client-side script.
const RefreshCookieName = "refreshToken"

// BuildRefreshCookie assembles the refresh cookie from configuration.
// A zero RefreshTokenExpiry (the malformed-duration case) yields MaxAge 0,
// a session cookie.
func BuildRefreshCookie(cfg *config.Config, token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   int(cfg.RefreshTokenExpiry.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: cfg.CookieSameSite,
	}
}

// ClearRefreshCookie returns a cookie with matching attributes and a
// negative max age so the browser actually removes it.
func ClearRefreshCookie(cfg *config.Config) *fiber.Cookie {
	c := BuildRefreshCookie(cfg, "")
	c.MaxAge = -1
	return c
}
