package main

import (
	"log"

	"theater_manager/config"
	"theater_manager/database"
	"theater_manager/helper"
	"theater_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // poster uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("CORS_ORIGIN", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartShowingScheduler()
	defer helper.StopShowingScheduler()
	helper.StartMovieStatusScheduler()
	defer helper.StopMovieStatusScheduler()

	router.SetupRoutes(app)

	addr := ":" + config.ConfigDefault("PORT", "8002")
	log.Fatal(app.Listen(addr))
}
