package database

import (
	"log"
	"time"

	"theater_manager/constants"
	"theater_manager/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme1"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}
	accounts := []model.Account{
		{Username: "Administration", Password: hashPassword, Active: true, Role: constants.ROLE_ADMIN},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	theaters := []model.Theater{
		{TheaterNumber: 1, SeatCapacity: 50, Status: true},
		{TheaterNumber: 2, SeatCapacity: 35, Status: true},
		{TheaterNumber: 3, SeatCapacity: 20, Status: true},
	}
	for _, theater := range theaters {
		if err := db.Where(model.Theater{TheaterNumber: theater.TheaterNumber}).FirstOrCreate(&theater).Error; err != nil {
			log.Println("failed to seed data for theater:", theater.TheaterNumber, "error:", err)
		}
	}

	rating := func(v float64) *float64 { return &v }
	movies := []model.Movie{
		{Name: "The Long Intermission", Duration: 128, ReleaseDate: parseDate("2025-11-07"), Featured: true, Rating: rating(8.4), Status: true},
		{Name: "Midnight Matinee", Duration: 95, ReleaseDate: parseDate("2026-01-16"), Featured: false, Rating: rating(6.9), Status: true},
	}
	for _, movie := range movies {
		movie.Slug = slug.Make(movie.Name)
		if err := db.Where(model.Movie{Slug: movie.Slug}).FirstOrCreate(&movie).Error; err != nil {
			log.Println("failed to seed data for movie:", movie.Name, "error:", err)
		}
	}
}
