package helper

import (
	"errors"
	"time"

	"theater_manager/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors for seat-inventory operations. Handlers map these onto
// HTTP statuses (404 / 409).
var (
	ErrNotFound = errors.New("not found")
	ErrSoldOut  = errors.New("sold out")
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InitializeShowing creates a showing with its seat count resolved from the
// theater's capacity. A caller-supplied count is clamped to
// [0, seat_capacity] rather than rejected.
func InitializeShowing(db *gorm.DB, input model.CreateShowingInput, showTime time.Time) (*model.Showing, error) {
	var showing model.Showing

	err := db.Transaction(func(tx *gorm.DB) error {
		var theater model.Theater
		if err := tx.First(&theater, input.TheaterId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		seats := theater.SeatCapacity
		if input.AvailableSeats != nil {
			seats = clamp(*input.AvailableSeats, 0, theater.SeatCapacity)
		}

		status := true
		if input.Status != nil {
			status = *input.Status
		}

		showing = model.Showing{
			MovieId:        input.MovieId,
			TheaterId:      input.TheaterId,
			ShowTime:       showTime.UTC(),
			AvailableSeats: seats,
			Status:         status,
		}
		return tx.Create(&showing).Error
	})
	if err != nil {
		return nil, err
	}
	return &showing, nil
}

// SellTicket decrements the showing's seat count and creates the ticket as
// one transaction. The decrement is a conditional UPDATE gated on
// available_seats > 0; two racing buyers cannot both take the last seat,
// the loser gets ErrSoldOut and no ticket row.
func SellTicket(db *gorm.DB, showingId uint, seatLabel string, age model.AgeCategory) (*model.Ticket, error) {
	var ticket model.Ticket

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Showing{}).
			Where("id = ? AND available_seats > 0", showingId).
			UpdateColumn("available_seats", gorm.Expr("available_seats - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Showing{}).Where("id = ?", showingId).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrSoldOut
		}

		ticket = model.Ticket{
			ShowingId:  showingId,
			SeatLabel:  seatLabel,
			Age:        age,
			Price:      PriceForAge(age),
			TicketCode: "TKT-" + uuid.New().String()[:10],
		}
		return tx.Create(&ticket).Error
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ReleaseTicket hard-deletes the ticket and gives its seat back. The DELETE
// rows-affected is the gate: a second release of the same ticket finds no
// row and returns ErrNotFound without touching the seat count. The
// increment never pushes available_seats past the theater's capacity, and
// is honored even when the showing has been soft-deleted since.
func ReleaseTicket(db *gorm.DB, ticketId uint) (*model.Ticket, error) {
	var ticket model.Ticket

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, ticketId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Where("id = ?", ticketId).Delete(&model.Ticket{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var showing model.Showing
		if err := tx.First(&showing, ticket.ShowingId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Showing row gone entirely; nothing left to restore.
				return nil
			}
			return err
		}

		var theater model.Theater
		if err := tx.First(&theater, showing.TheaterId).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		capacity := theater.SeatCapacity
		if capacity <= 0 {
			capacity = showing.AvailableSeats + 1
		}

		return tx.Model(&model.Showing{}).
			Where("id = ? AND available_seats < ?", showing.ID, capacity).
			UpdateColumn("available_seats", gorm.Expr("available_seats + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
