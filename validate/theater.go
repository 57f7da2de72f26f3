package validate

import (
	"fmt"

	"theater_manager/constants"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func seatCapacityInRange(capacity int) error {
	if capacity > constants.MAX_SEAT_CAPACITY {
		return fmt.Errorf("seat_capacity must be at most %d", constants.MAX_SEAT_CAPACITY)
	}
	return nil
}

func CreateTheater() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateTheaterInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if err := seatCapacityInRange(input.SeatCapacity); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)

		return c.Next()
	}
}

func EditTheater(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateTheaterInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.SeatCapacity != nil {
			if err := seatCapacityInRange(*input.SeatCapacity); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
			}
		}

		c.Locals("input", input)

		return GetById(key)(c)
	}
}
