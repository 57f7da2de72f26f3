package model

import "time"

type Showing struct {
	DTO
	MovieId        uint      `gorm:"not null;index" json:"movie_id"`
	TheaterId      uint      `gorm:"not null;index" json:"theater_id"`
	ShowTime       time.Time `gorm:"not null" validate:"required" json:"show_time"` // stored UTC
	AvailableSeats int       `gorm:"not null" json:"available_seats"`
	Status         bool      `gorm:"not null;default:true" json:"status"`
	Movie          Movie     `gorm:"foreignKey:MovieId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"movie"`
	Theater        Theater   `gorm:"foreignKey:TheaterId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"theater"`

	Tickets []Ticket `gorm:"foreignKey:ShowingId" json:"tickets"`
}

type Showings []Showing

type CreateShowingInput struct {
	MovieId   uint   `json:"movie_id" validate:"required,gt=0"`
	TheaterId uint   `json:"theater_id" validate:"required,gt=0"`
	ShowTime  string `json:"show_time" validate:"required"` // RFC 3339, converted to UTC
	// Optional override; clamped to [0, seat_capacity] of the theater.
	AvailableSeats *int  `json:"available_seats"`
	Status         *bool `json:"status"`
}

type UpdateShowingInput struct {
	MovieId        *uint   `json:"movie_id" validate:"omitempty,gt=0"`
	TheaterId      *uint   `json:"theater_id" validate:"omitempty,gt=0"`
	ShowTime       *string `json:"show_time"`
	AvailableSeats *int    `json:"available_seats" validate:"omitempty,gte=0"`
	Status         *bool   `json:"status"`
}

type FilterShowingInput struct {
	Pagination
	MovieId uint  `query:"movie_id"`
	Status  *bool `query:"status"`
}
