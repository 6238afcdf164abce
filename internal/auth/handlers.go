package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, basicAuth fiber.Handler) {
	// Registration is the one unauthenticated mutation.
	r.Post("/", func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		user, err := svc.Register(c.Context(), req)
		if err != nil {
			if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrDuplicateUsername) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"id": user.ID})
	})

	// Authenticated probe: a 200 here proves the credentials resolved.
	r.Get("/", basicAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{})
	})
}
