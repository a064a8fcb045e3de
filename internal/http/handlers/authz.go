package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Iamtheusername112/eCommerce/internal/domain"
	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
)

// Auth consumes tokens minted by the external identity provider. We never run
// a login flow ourselves; the token's subject is the opaque user id and the
// profile row is upserted on first sight.
type Auth struct {
	Secret []byte
	Users  *repos.UserRepo
}

func (a *Auth) identity(c *fiber.Ctx) (*domain.User, error) {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fiber.ErrUnauthorized
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		return a.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fiber.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	// First authenticated request creates the profile; afterwards the DB row
	// (not the token) is authoritative for the role.
	if err := a.Users.UpsertFromClaims(sub, email, name, role); err != nil {
		return nil, err
	}
	return a.Users.ByID(sub)
}

// RequireUser rejects unauthenticated requests and stores the caller's
// identity in locals for handlers and the logger.
func (a *Auth) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := a.identity(c)
		if err != nil {
			applog.Security(c, "access.denied", nil)
			return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		c.Locals("userID", u.ID)
		c.Locals("userRole", u.Role)
		return c.Next()
	}
}

// RequireAdmin additionally checks the stored role.
func (a *Auth) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := a.identity(c)
		if err != nil {
			applog.Security(c, "access.denied.admin", nil)
			return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		if u.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return jsonError(c, fiber.StatusForbidden, "forbidden")
		}
		c.Locals("userID", u.ID)
		c.Locals("userRole", u.Role)
		return c.Next()
	}
}

func userID(c *fiber.Ctx) string {
	uid, _ := c.Locals("userID").(string)
	return uid
}
