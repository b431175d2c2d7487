package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

const bearerPrefix = "Bearer "

// Authenticate validates the bearer token and resolves its subject to a
// stored user. On success the identity is attached to the request context.
func Authenticate(tokens *auth.TokenService, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return reject(c, auth.ReasonEmpty)
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			var tokenErr *auth.TokenError
			if errors.As(err, &tokenErr) {
				return reject(c, tokenErr.Reason)
			}
			return reject(c, auth.ReasonMalformed)
		}

		user, err := users.FindByUsername(c.UserContext(), claims.Subject)
		if errors.Is(err, repository.ErrNotFound) {
			return reject(c, "unknown_subject")
		}
		if err != nil {
			return err
		}

		identity := auth.IdentityFromUser(user)
		c.SetUserContext(auth.WithIdentity(c.UserContext(), identity))
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func reject(c *fiber.Ctx, reason auth.Reason) error {
	metrics.AuthRejections.WithLabelValues(string(reason)).Inc()
	slog.Warn("request rejected by auth gateway",
		"reason", string(reason),
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
	)
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized: invalid or expired token",
	})
}
