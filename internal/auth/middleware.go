package auth

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BasicAuthMiddleware gates a route behind HTTP Basic credentials and stores
// the authenticated username in locals. Every rejection, whatever the cause,
// produces the same 401 body so callers cannot probe which check failed.
func BasicAuthMiddleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, password, ok := basicFromHeader(c.Get("Authorization"))
		if !ok {
			return unauthorized(c)
		}

		user, err := svc.Authenticate(c.Context(), username, password)
		if err != nil {
			// Only credential failures get the uniform 401; a store outage
			// is a server fault and must not masquerade as one.
			if errors.Is(err, ErrInvalidCredentials) {
				return unauthorized(c)
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Locals("username", user.Username)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Basic Auth Required."})
}

func basicFromHeader(header string) (string, string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return username, password, true
}
