package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/loginportal/internal/session"
)

// RequireUser redirects page requests without a valid session to the login page.
func RequireUser(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := sessions.Get(c); !ok {
			return c.Redirect("/")
		}
		return c.Next()
	}
}

// RequireUserJSON guards the admin JSON endpoints; unauthenticated requests
// get a 401 body instead of a redirect.
func RequireUserJSON(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := sessions.Get(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		return c.Next()
	}
}
