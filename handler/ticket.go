package handler

import (
	"errors"
	"fmt"
	"log"
	"time"

	"theater_manager/constants"
	"theater_manager/database"
	"theater_manager/helper"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func serializeTicket(t model.Ticket) fiber.Map {
	return fiber.Map{
		"ticket_id":   utils.FormatID(t.ID),
		"showing_id":  utils.FormatID(t.ShowingId),
		"seat_label":  t.SeatLabel,
		"age":         t.Age,
		"price":       t.Price,
		"ticket_code": t.TicketCode,
	}
}

func GetTickets(c *fiber.Ctx) error {
	filterInput := new(model.FilterTicketInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	condition := database.DB.Model(&model.Ticket{})
	if filterInput.ShowingId > 0 {
		condition = condition.Where("showing_id = ?", filterInput.ShowingId)
	}

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var tickets model.Tickets
	if err := condition.Order("id asc").Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	serialized := make([]fiber.Map, 0, len(tickets))
	for _, t := range tickets {
		serialized = append(serialized, serializeTicket(t))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, serialized)
}

func GetTicketById(c *fiber.Ctx) error {
	ticketId := c.Locals("inputId").(int)

	var ticket model.Ticket
	if err := database.DB.First(&ticket, ticketId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeTicket(ticket))
}

// PurchaseTicket sells one seat. Seat-count check, ticket insert and
// decrement happen inside helper.SellTicket as a single transaction.
func PurchaseTicket(c *fiber.Ctx) error {
	input := c.Locals("input").(model.PurchaseTicketInput)

	db := database.DB
	ticket, err := helper.SellTicket(db, input.ShowingId, input.SeatLabel, model.AgeCategory(input.Age))
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SHOWING_NOT_FOUND, err)
		}
		if errors.Is(err, helper.ErrSoldOut) {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.SHOWING_SOLD_OUT, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	BroadcastShowing(ticket.ShowingId)

	if input.Email != "" {
		sendTicketConfirmation(db, *ticket, input.Email)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, serializeTicket(*ticket))
}

// DeleteTicket hard-deletes the ticket and restores its seat. Admin
// only. Deleting twice fails with 404; the seat comes back exactly once.
func DeleteTicket(c *fiber.Ctx) error {
	if _, isAdmin := helper.GetInfoAccountFromToken(c); !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	ticketId := c.Locals("inputId").(int)

	ticket, err := helper.ReleaseTicket(database.DB, uint(ticketId))
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	BroadcastShowing(ticket.ShowingId)

	return utils.SuccessResponse(c, fiber.StatusOK, serializeTicket(*ticket))
}

func GetTicketQRCode(c *fiber.Ctx) error {
	ticketId := c.Locals("inputId").(int)

	var ticket model.Ticket
	if err := database.DB.First(&ticket, ticketId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	png, err := utils.GenerateQRCode(ticket.TicketCode, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func sendTicketConfirmation(db *gorm.DB, ticket model.Ticket, email string) {
	var showing model.Showing
	if err := db.Preload("Movie").Preload("Theater").First(&showing, ticket.ShowingId).Error; err != nil {
		log.Printf("failed to load showing %d for confirmation email: %v", ticket.ShowingId, err)
		return
	}

	qrPNG, err := utils.GenerateQRCode(ticket.TicketCode, 256)
	if err != nil {
		log.Printf("failed to build QR for ticket %s: %v", ticket.TicketCode, err)
		qrPNG = nil
	}

	utils.SendTicketConfirmationEmail(email, utils.TicketConfirmationData{
		TicketCode: ticket.TicketCode,
		MovieName:  showing.Movie.Name,
		Theater:    fmt.Sprintf("Theater %d", showing.Theater.TheaterNumber),
		ShowTime:   showing.ShowTime.UTC().Format(time.RFC3339),
		SeatLabel:  ticket.SeatLabel,
		Age:        string(ticket.Age),
		Price:      ticket.Price,
	}, qrPNG)
}
