package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ecomkit/storefront-cart/internal/model"
	"github.com/ecomkit/storefront-cart/internal/session"
	"github.com/ecomkit/storefront-cart/internal/tracking"
)

// AuthHandler handles the sign-in and sign-out endpoints. They manage the
// account-session cookie; account storage itself lives elsewhere, and an
// unknown email still gets a session (it simply resolves to no account at
// checkout).
type AuthHandler struct {
	cookies session.Cookies
	sink    tracking.Sink
}

// NewAuthHandler creates a new AuthHandler with the given cookie names and sink.
func NewAuthHandler(cookies session.Cookies, sink tracking.Sink) *AuthHandler {
	return &AuthHandler{cookies: cookies, sink: sink}
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required."})
	}

	session.SignIn(c, h.cookies, email)
	h.sink.Identify(c.Context(), session.FormatUserID(email))

	log.Info().Msg("session signed in")

	return c.JSON(fiber.Map{"ok": true})
}

// Logout handles POST /api/auth/logout requests.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session.SignOut(c, h.cookies)
	h.sink.Anonymize(c.Context())

	log.Info().Msg("session signed out")

	return c.JSON(fiber.Map{"ok": true})
}
