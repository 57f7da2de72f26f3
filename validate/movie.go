package validate

import (
	"time"

	"theater_manager/constants"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateMovieInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if _, err := time.Parse("2006-01-02", input.ReleaseDate); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "release_date must be YYYY-MM-DD", err)
		}

		c.Locals("input", input)

		return c.Next()
	}
}

func EditMovie(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateMovieInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if input.ReleaseDate != nil {
			if _, err := time.Parse("2006-01-02", *input.ReleaseDate); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "release_date must be YYYY-MM-DD", err)
			}
		}

		c.Locals("input", input)

		return GetById(key)(c)
	}
}
