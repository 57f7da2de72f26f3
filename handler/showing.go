package handler

import (
	"errors"
	"time"

	"theater_manager/constants"
	"theater_manager/database"
	"theater_manager/helper"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func serializeShowing(s model.Showing) fiber.Map {
	return fiber.Map{
		"showing_id":      utils.FormatID(s.ID),
		"movie_id":        utils.FormatID(s.MovieId),
		"theater_id":      utils.FormatID(s.TheaterId),
		"show_time":       s.ShowTime.UTC().Format(time.RFC3339),
		"available_seats": s.AvailableSeats,
		"status":          s.Status,
	}
}

func GetShowings(c *fiber.Ctx) error {
	filterInput := new(model.FilterShowingInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.Showing{})
	if filterInput.MovieId > 0 {
		condition = condition.Where("movie_id = ?", filterInput.MovieId)
	}
	if filterInput.Status != nil {
		condition = condition.Where("status = ?", *filterInput.Status)
	}

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var showings model.Showings
	if err := condition.Order("id asc").Find(&showings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	serialized := make([]fiber.Map, 0, len(showings))
	for _, s := range showings {
		serialized = append(serialized, serializeShowing(s))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, serialized)
}

func GetShowingById(c *fiber.Ctx) error {
	showingId := c.Locals("inputId").(int)

	var showing model.Showing
	if err := database.DB.First(&showing, showingId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SHOWING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeShowing(showing))
}

// CreateShowing initializes available_seats from the theater's capacity,
// clamped when the caller supplies an explicit count.
func CreateShowing(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateShowingInput)
	showTime := c.Locals("showTime").(time.Time)

	showing, err := helper.InitializeShowing(database.DB, input, showTime)
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.THEATER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, serializeShowing(*showing))
}

// buildShowingUpdates collects the columns an edit actually carries.
// available_seats is never part of the map: writing it from a row read
// earlier in the request would erase any sale committed in between, so
// seat edits go through their own clamped UPDATE.
func buildShowingUpdates(input model.UpdateShowingInput, showTime *time.Time) map[string]any {
	updates := map[string]any{}
	if input.MovieId != nil {
		updates["movie_id"] = *input.MovieId
	}
	if input.TheaterId != nil {
		updates["theater_id"] = *input.TheaterId
	}
	if showTime != nil {
		updates["show_time"] = showTime.UTC()
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	return updates
}

func EditShowing(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateShowingInput)
	showingId := c.Locals("inputId").(int)

	db := database.DB
	var showing model.Showing
	if err := db.First(&showing, showingId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SHOWING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var showTime *time.Time
	if v := c.Locals("showTime"); v != nil {
		t := v.(time.Time)
		showTime = &t
	}

	updates := buildShowingUpdates(input, showTime)
	if len(updates) > 0 {
		if err := db.Model(&model.Showing{}).Where("id = ?", showing.ID).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if input.AvailableSeats != nil {
		theaterId := showing.TheaterId
		if input.TheaterId != nil {
			theaterId = *input.TheaterId
		}
		var theater model.Theater
		if err := db.First(&theater, theaterId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, constants.THEATER_NOT_FOUND, err)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		seats := *input.AvailableSeats
		if seats > theater.SeatCapacity {
			seats = theater.SeatCapacity
		}
		if seats < 0 {
			seats = 0
		}
		if err := db.Model(&model.Showing{}).Where("id = ?", showing.ID).
			Update("available_seats", seats).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := db.First(&showing, showing.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	BroadcastShowing(showing.ID)

	return utils.SuccessResponse(c, fiber.StatusOK, serializeShowing(showing))
}

func DeleteShowing(c *fiber.Ctx) error {
	showingId := c.Locals("inputId").(int)

	db := database.DB
	var showing model.Showing
	if err := db.First(&showing, showingId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SHOWING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if showing.Status {
		if err := db.Model(&showing).Update("status", false).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		showing.Status = false
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeShowing(showing))
}
