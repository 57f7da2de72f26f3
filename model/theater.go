package model

type Theater struct {
	DTO
	TheaterNumber uint `gorm:"not null;uniqueIndex" validate:"required,min=1" json:"theater_number"`
	SeatCapacity  int  `gorm:"not null" validate:"required,min=1" json:"seat_capacity"`
	Status        bool `gorm:"not null;default:true" json:"status"`
}

type Theaters []Theater

type CreateTheaterInput struct {
	TheaterNumber uint  `json:"theater_number" validate:"required,min=1"`
	SeatCapacity  int   `json:"seat_capacity" validate:"required,min=1"`
	Status        *bool `json:"status"`
}

type UpdateTheaterInput struct {
	TheaterNumber *uint `json:"theater_number" validate:"omitempty,min=1"`
	SeatCapacity  *int  `json:"seat_capacity" validate:"omitempty,min=1"`
	Status        *bool `json:"status"`
}
