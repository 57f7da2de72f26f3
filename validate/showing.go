package validate

import (
	"time"

	"theater_manager/constants"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateShowing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateShowingInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		showTime, err := time.Parse(time.RFC3339, input.ShowTime)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "show_time must be RFC 3339", err)
		}

		c.Locals("input", input)
		c.Locals("showTime", showTime)

		return c.Next()
	}
}

func EditShowing(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateShowingInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.ShowTime != nil {
			showTime, err := time.Parse(time.RFC3339, *input.ShowTime)
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "show_time must be RFC 3339", err)
			}
			c.Locals("showTime", showTime)
		}

		c.Locals("input", input)

		return GetById(key)(c)
	}
}
