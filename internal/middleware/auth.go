package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/payout-desk/payout_desk/internal/auth"
	"github.com/payout-desk/payout_desk/internal/identity"
)

// ClaimsKey is the Locals key under which verified token claims are stored.
const ClaimsKey = "claims"

// TokenRequired validates the bearer token and attaches its claims to the
// request. A missing header is 401; a token that fails verification is 403.
func TokenRequired(tokens *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing token")
		}

		claims, err := tokens.Verify(strings.TrimSpace(authz[len("Bearer "):]))
		if err != nil {
			return fiber.NewError(http.StatusForbidden, "invalid or expired token")
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// AdminOnly rejects authenticated callers whose token does not carry the
// admin role. It is a second gate on top of TokenRequired, not a replacement.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ClaimsKey).(*auth.Claims)
		if !ok || claims.Role != identity.RoleAdmin {
			return fiber.NewError(http.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the verified claims attached by TokenRequired.
func ClaimsFromCtx(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*auth.Claims)
	return claims, ok
}
