package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/solarlabs-dev/solar-equipment-catalog/internal/domain"
	"github.com/solarlabs-dev/solar-equipment-catalog/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	app.Get("/equipment/:id", getEquipment(svcs))
}

// getEquipment translates the lookup result: 200 with the entity, 404 when
// the id has no row, 500 on decode or data-access failure. A decode failure
// is a data-integrity problem, so the full raw row is logged for diagnosis.
func getEquipment(svcs *service.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idParam, err := c.ParamsInt("id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "equipment id must be an integer"})
		}
		id, err := domain.NewEquipmentIdentity(int64(idParam))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		eq, err := svcs.Repos.GetEquipment(c.UserContext(), id)
		var shapeErr *domain.UnrecognizedShapeError
		switch {
		case errors.As(err, &shapeErr):
			log.Error().
				Int64("equipment_id", shapeErr.Row.ID).
				Str("equipment_type", shapeErr.Row.EquipmentTypeName).
				Interface("row", shapeErr.Row).
				Msg("equipment row matches no known shape")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		case err != nil:
			log.Error().Err(err).Int64("equipment_id", id.Int64()).Msg("equipment lookup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		case eq == nil:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("equipment %d not found", id.Int64()),
			})
		}

		return c.JSON(fiber.Map{
			"equipment_type": eq.Kind(),
			"equipment":      eq,
		})
	}
}
