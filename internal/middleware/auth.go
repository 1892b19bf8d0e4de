package middleware

import (
	"context"
	"errors"
	"strings"

	"library-backend/internal/models"
	"library-backend/internal/services"
	"library-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const userKey = "user"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Authenticate loads the user behind an optional "Authorization: Bearer"
// header. Requests without a header pass through anonymously; a header that
// does not verify is rejected.
func Authenticate(auth Authenticator, logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid Authorization format")
		}

		user, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
			}
			logger.WithError(err).Error("Failed to authenticate request")
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to authenticate request")
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// RequireLogin rejects anonymous requests.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication credentials were not provided")
		}
		return c.Next()
	}
}

// RequirePermission rejects requests whose user's role lacks perm.
func RequirePermission(perm models.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication credentials were not provided")
		}
		if !user.Can(perm) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "You do not have permission to perform this action")
		}
		return c.Next()
	}
}
