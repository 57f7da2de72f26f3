package validate

import (
	"theater_manager/constants"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func PurchaseTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PurchaseTicketInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)

		return c.Next()
	}
}
