package model

type AgeCategory string

const (
	AgeAdult  AgeCategory = "adult"
	AgeKid    AgeCategory = "kid"
	AgeSenior AgeCategory = "senior"
)

// Ticket rows are hard-deleted; releasing a ticket restores the seat.
type Ticket struct {
	DTO
	ShowingId  uint        `gorm:"not null;index" json:"showing_id"`
	SeatLabel  string      `gorm:"not null;size:10" validate:"required" json:"seat_label"` // e.g. "A1"
	Age        AgeCategory `gorm:"not null;size:10" validate:"required,oneof=adult kid senior" json:"age"`
	Price      float64     `gorm:"not null" json:"price"`
	TicketCode string      `gorm:"size:40;uniqueIndex" json:"ticket_code"`
	Showing    Showing     `gorm:"foreignKey:ShowingId" json:"showing"`
}

type Tickets []Ticket

type PurchaseTicketInput struct {
	ShowingId uint   `json:"showing_id" validate:"required,gt=0"`
	SeatLabel string `json:"seat_label" validate:"required,max=10"`
	Age       string `json:"age" validate:"required,oneof=adult kid senior"`
	// When present, a confirmation email with the ticket QR code is sent.
	Email string `json:"email" validate:"omitempty,email"`
}

type FilterTicketInput struct {
	Pagination
	ShowingId uint `query:"showing_id"`
}
