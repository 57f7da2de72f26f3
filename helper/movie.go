package helper

import (
	"log"
	"time"

	"theater_manager/database"
	"theater_manager/model"

	"github.com/go-co-op/gocron/v2"
)

var movieScheduler gocron.Scheduler

// Movies stay featured for this long after release before the daily job
// clears the flag.
const featuredWindow = 60 * 24 * time.Hour

func UnfeatureOldMovies() {
	log.Println("[CRON] UnfeatureOldMovies triggered")

	db := database.DB
	cutoff := time.Now().UTC().Add(-featuredWindow)

	result := db.Model(&model.Movie{}).
		Where("featured = ? AND release_date < ?", true, cutoff).
		Update("featured", false)
	if result.Error != nil {
		log.Printf("failed to unfeature old movies: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("unfeatured %d movies past their release window", result.RowsAffected)
	}
}

func StartMovieStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	movieScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(UnfeatureOldMovies),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("movie status scheduler started (daily)")
}

func StopMovieStatusScheduler() {
	if movieScheduler != nil {
		if err := movieScheduler.Shutdown(); err != nil {
			log.Printf("failed to stop movie status scheduler: %v", err)
		}
	}
}
