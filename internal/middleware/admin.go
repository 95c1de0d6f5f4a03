package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenHeader = "X-Admin-Token"

// AdminAuth guards administrative routes with a static token whose bcrypt hash
// is configured. An empty hash disables the guarded routes entirely.
func AdminAuth(tokenHash string) fiber.Handler {
	hash := []byte(tokenHash)
	return func(c *fiber.Ctx) error {
		if len(hash) == 0 {
			return fiber.NewError(http.StatusForbidden, "admin endpoints disabled")
		}

		token := c.Get(adminTokenHeader)
		if token == "" {
			authz := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token = strings.TrimSpace(authz[len("Bearer "):])
			}
		}
		if token == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing admin token")
		}

		if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid admin token")
		}

		c.Locals("admin", true)
		return c.Next()
	}
}
