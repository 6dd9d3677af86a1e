package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"simplebanking/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	principalKey = "principal"
	// AdminTokenHeader carries the configured administrator token. A request
	// bearing a valid token acts as the ADMIN principal; everything else
	// authenticates with Basic credentials as a regular user.
	AdminTokenHeader = "X-SECURITY-ADMIN-KEY"
)

type Middleware struct {
	users      repository.UserRepository
	adminToken string
	logger     *zap.Logger
}

func NewMiddleware(users repository.UserRepository, adminToken string, logger *zap.Logger) *Middleware {
	return &Middleware{users: users, adminToken: adminToken, logger: logger}
}

// Authenticate resolves the request principal. Credential verification is the
// only stateful step; everything downstream works off the Principal in locals.
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Get(AdminTokenHeader); token != "" {
			if m.adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(m.adminToken)) != 1 {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			c.Locals(principalKey, Principal{Username: "admin", Role: RoleAdmin})
			return c.Next()
		}

		username, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="banking"`)
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		user, err := m.users.FindByUsername(username)
		if err != nil {
			if !errors.Is(err, repository.ErrUserNotFound) {
				m.logger.Error("Failed to look up user for authentication",
					zap.String("username", username), zap.Error(err))
			}
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		if !VerifyPassword(user.Password, password) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		c.Locals(principalKey, Principal{UserID: user.ID, Username: user.Username, Role: RoleUser})
		return c.Next()
	}
}

// RequireOperation enforces the role policy for one operation. Denials carry
// no body so the response does not reveal whether the resource exists.
func (m *Middleware) RequireOperation(op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFromCtx(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		if !Allowed(op, p.Role) {
			return c.SendStatus(fiber.StatusForbidden)
		}
		return c.Next()
	}
}

func PrincipalFromCtx(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey).(Principal)
	return p, ok
}

// SetPrincipal places a principal into the request locals. Exposed for tests
// that exercise handlers without the authentication middleware.
func SetPrincipal(c *fiber.Ctx, p Principal) {
	c.Locals(principalKey, p)
}

func parseBasicAuth(header string) (username, password string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}

	cred, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}

	pair := strings.SplitN(string(cred), ":", 2)
	if len(pair) != 2 {
		return "", "", false
	}

	return pair[0], pair[1], true
}
