package trip

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, basicAuth fiber.Handler) {
	r.Post("/", basicAuth, func(c *fiber.Ctx) error {
		var req Trip
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		trip, err := svc.CreateTrip(c.Context(), req, callerUsername(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trip)
	})

	r.Get("/", basicAuth, func(c *fiber.Ctx) error {
		trips, err := svc.ListTrips(c.Context(), callerUsername(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trips)
	})

	r.Get("/:id", basicAuth, func(c *fiber.Ctx) error {
		trip, err := svc.GetTrip(c.Context(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(trip)
	})

	r.Put("/:id", basicAuth, func(c *fiber.Ctx) error {
		var patch Patch
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		trip, err := svc.UpdateTrip(c.Context(), c.Params("id"), patch)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(trip)
	})

	r.Delete("/:id", basicAuth, func(c *fiber.Ctx) error {
		trip, err := svc.DeleteTrip(c.Context(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(trip)
	})
}

func callerUsername(c *fiber.Ctx) string {
	username, _ := c.Locals("username").(string)
	return username
}

// Unknown identifiers answer 404 with {"data": []}, the body shape the
// original API clients expect.
func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"data": []string{}})
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
