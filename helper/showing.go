package helper

import (
	"log"
	"time"

	"theater_manager/database"
	"theater_manager/model"

	"github.com/robfig/cron/v3"
)

var scheduler *cron.Cron

// StartShowingScheduler deactivates showings once their show time has
// passed, so browse listings only offer purchasable showings.
func StartShowingScheduler() {
	scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := scheduler.AddFunc("*/5 * * * *", deactivateExpiredShowings)
	if err != nil {
		log.Printf("failed to start showing scheduler: %v", err)
		return
	}

	scheduler.Start()
	log.Println("showing scheduler started (every 5 minutes)")
}

func deactivateExpiredShowings() {
	now := time.Now().UTC()
	result := database.DB.Model(&model.Showing{}).
		Where("status = ? AND show_time < ?", true, now).
		Update("status", false)

	if result.Error != nil {
		log.Printf("failed to deactivate expired showings: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("deactivated %d expired showings", result.RowsAffected)
	}
}

func StopShowingScheduler() {
	if scheduler != nil {
		scheduler.Stop()
		log.Println("showing scheduler stopped")
	}
}
