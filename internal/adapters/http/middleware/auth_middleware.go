package middleware

import (
	"context"
	"strings"

	"turfbook/internal/adapters/persistence/models"
	"turfbook/internal/core/domain"
	"turfbook/internal/core/services"
	"turfbook/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middlewares
const (
	LocalUser        = "user"
	LocalAdmin       = "admin"
	LocalPrincipal   = "principal"
	LocalPrincipalID = "principalID"
	LocalRole        = "role"
)

// AccessTokenCookie is the cookie carrying the access token
const AccessTokenCookie = "access_token"

// Resolver resolves an access token under one of the three policies
type Resolver interface {
	ResolveUser(ctx context.Context, token string) (*models.User, error)
	ResolveAdmin(ctx context.Context, token string) (*models.Admin, error)
	ResolveAny(ctx context.Context, token string) (*services.Principal, error)
}

// RequireUser admits only users
func RequireUser(resolver Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := resolver.ResolveUser(c.UserContext(), tokenFromRequest(c))
		if err != nil {
			return response.FromError(c, err)
		}

		setPrincipal(c, &services.Principal{Role: domain.RoleUser, User: user})
		return c.Next()
	}
}

// RequireAdmin admits only admins
func RequireAdmin(resolver Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := resolver.ResolveAdmin(c.UserContext(), tokenFromRequest(c))
		if err != nil {
			return response.FromError(c, err)
		}

		setPrincipal(c, &services.Principal{Role: domain.RoleAdmin, Admin: admin})
		return c.Next()
	}
}

// RequireAny admits a user or an admin
func RequireAny(resolver Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := resolver.ResolveAny(c.UserContext(), tokenFromRequest(c))
		if err != nil {
			return response.FromError(c, err)
		}

		setPrincipal(c, principal)
		return c.Next()
	}
}

// CurrentPrincipal returns the principal set by one of the Require middlewares
func CurrentPrincipal(c *fiber.Ctx) (*services.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(*services.Principal)
	return p, ok && p != nil
}

func setPrincipal(c *fiber.Ctx, p *services.Principal) {
	if p.User != nil {
		c.Locals(LocalUser, p.User)
	}
	if p.Admin != nil {
		c.Locals(LocalAdmin, p.Admin)
	}
	c.Locals(LocalPrincipal, p)
	c.Locals(LocalPrincipalID, p.ID())
	c.Locals(LocalRole, string(p.Role))
}

// tokenFromRequest reads the access token from the cookie, then the
// Authorization header
func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(AccessTokenCookie); token != "" {
		return token
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
