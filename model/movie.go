package model

import "time"

type Movie struct {
	DTO
	Name           string    `gorm:"not null;index" validate:"required" json:"name"`
	Duration       int       `gorm:"not null" validate:"required,gt=0" json:"duration"` // minutes
	ReleaseDate    time.Time `gorm:"type:date;not null" validate:"required" json:"release_date"`
	MoviePosterURL string    `gorm:"type:varchar(255)" json:"movie_poster_url"`
	Featured       bool      `gorm:"not null;default:false" json:"featured"`
	Rating         *float64  `validate:"omitempty,gte=0,lte=10" json:"rating"`
	Slug           string    `gorm:"uniqueIndex" json:"slug"`
	Status         bool      `gorm:"not null;default:true" json:"status"`
}

type Movies []Movie

type CreateMovieInput struct {
	Name           string   `json:"name" validate:"required"`
	Duration       int      `json:"duration" validate:"required,gt=0"`
	ReleaseDate    string   `json:"release_date" validate:"required"` // YYYY-MM-DD
	MoviePosterURL string   `json:"movie_poster_url" validate:"omitempty,url"`
	Featured       *bool    `json:"featured"`
	Rating         *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Status         *bool    `json:"status"`
}

type UpdateMovieInput struct {
	Name           *string  `json:"name"`
	Duration       *int     `json:"duration" validate:"omitempty,gt=0"`
	ReleaseDate    *string  `json:"release_date"`
	MoviePosterURL *string  `json:"movie_poster_url" validate:"omitempty,url"`
	Featured       *bool    `json:"featured"`
	Rating         *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Status         *bool    `json:"status"`
}

type FilterMovieInput struct {
	Pagination
	Name     string `query:"name"`
	Featured *bool  `query:"featured"`
	Status   *bool  `query:"status"`
}
