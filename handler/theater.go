package handler

import (
	"errors"

	"theater_manager/constants"
	"theater_manager/database"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func serializeTheater(t model.Theater) fiber.Map {
	return fiber.Map{
		"theater_id":     utils.FormatID(t.ID),
		"theater_number": t.TheaterNumber,
		"seat_capacity":  t.SeatCapacity,
		"status":         t.Status,
	}
}

func GetTheaters(c *fiber.Ctx) error {
	var theaters model.Theaters
	if err := database.DB.Order("id asc").Find(&theaters).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	serialized := make([]fiber.Map, 0, len(theaters))
	for _, t := range theaters {
		serialized = append(serialized, serializeTheater(t))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, serialized)
}

func GetTheaterById(c *fiber.Ctx) error {
	theaterId := c.Locals("inputId").(int)

	var theater model.Theater
	if err := database.DB.First(&theater, theaterId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.THEATER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeTheater(theater))
}

func CreateTheater(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateTheaterInput)

	theater := model.Theater{
		TheaterNumber: input.TheaterNumber,
		SeatCapacity:  input.SeatCapacity,
		Status:        true,
	}
	if input.Status != nil {
		theater.Status = *input.Status
	}

	if err := database.DB.Create(&theater).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, serializeTheater(theater))
}

func EditTheater(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateTheaterInput)
	theaterId := c.Locals("inputId").(int)

	db := database.DB
	var theater model.Theater
	if err := db.First(&theater, theaterId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.THEATER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := copier.CopyWithOption(&theater, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if input.Status != nil {
		theater.Status = *input.Status
	}

	if err := db.Save(&theater).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeTheater(theater))
}

func DeleteTheater(c *fiber.Ctx) error {
	theaterId := c.Locals("inputId").(int)

	db := database.DB
	var theater model.Theater
	if err := db.First(&theater, theaterId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.THEATER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if theater.Status {
		if err := db.Model(&theater).Update("status", false).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		theater.Status = false
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeTheater(theater))
}
