// Package session resolves the two cookies the storefront runs on: an opaque
// per-browser cart identifier and the account-session email set by sign-in.
package session

import (
	"crypto/sha256"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localCartID = "session.cart_id"
	localEmail  = "session.email"

	cartCookieMaxAge    = 365 * 24 * time.Hour
	sessionCookieMaxAge = 30 * 24 * time.Hour
)

// Cookies carries the configured cookie names.
type Cookies struct {
	Cart    string
	Session string
}

// Middleware ensures every request carries a cart identifier, minting a new
// one (and setting its cookie) on first contact, and resolves the session
// email when present.
func Middleware(cookies Cookies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cartID := c.Cookies(cookies.Cart)
		if cartID == "" {
			cartID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookies.Cart,
				Value:    cartID,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(cartCookieMaxAge),
			})
		}

		c.Locals(localCartID, cartID)
		c.Locals(localEmail, c.Cookies(cookies.Session))

		return c.Next()
	}
}

// CartID returns the request's cart identifier.
func CartID(c *fiber.Ctx) string {
	id, _ := c.Locals(localCartID).(string)
	return id
}

// Email returns the session email, or an empty string for anonymous visitors.
func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(localEmail).(string)
	return email
}

// SignIn sets the account-session cookie for the given email.
func SignIn(c *fiber.Ctx, cookies Cookies, email string) {
	c.Cookie(&fiber.Cookie{
		Name:     cookies.Session,
		Value:    email,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(sessionCookieMaxAge),
	})
	c.Locals(localEmail, email)
}

// SignOut clears the account-session cookie.
func SignOut(c *fiber.Ctx, cookies Cookies) {
	c.Cookie(&fiber.Cookie{
		Name:     cookies.Session,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	c.Locals(localEmail, "")
}

// FormatUserID derives the stable personalization identifier for an email:
// the SHA-256 of the lowercased address, rendered as a UUID with the version
// and variant bits forced so it reads as a valid v5-style identifier.
func FormatUserID(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(email)))

	var id uuid.UUID
	copy(id[:], sum[:16])
	id[6] = (id[6] & 0x0f) | 0x50
	id[8] = (id[8] & 0x3f) | 0x80

	return id.String()
}
