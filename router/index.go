package router

import (
	"theater_manager/handler"
	"theater_manager/middleware"
	"theater_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)

	movie := api.Group("/movies")
	movie.Get("/", handler.GetMovies)
	movie.Get("/:movieId", validate.GetById("movieId"), handler.GetMovieById)
	movie.Post("/", middleware.Protected(), validate.CreateMovie(), handler.CreateMovie)
	movie.Put("/:movieId", middleware.Protected(), validate.EditMovie("movieId"), handler.EditMovie)
	movie.Delete("/:movieId", middleware.Protected(), validate.GetById("movieId"), handler.DeleteMovie)
	movie.Post("/:movieId/poster", middleware.Protected(), validate.GetById("movieId"), handler.UploadMoviePoster)

	theater := api.Group("/theaters")
	theater.Get("/", handler.GetTheaters)
	theater.Get("/:theaterId", validate.GetById("theaterId"), handler.GetTheaterById)
	theater.Post("/", middleware.Protected(), validate.CreateTheater(), handler.CreateTheater)
	theater.Put("/:theaterId", middleware.Protected(), validate.EditTheater("theaterId"), handler.EditTheater)
	theater.Delete("/:theaterId", middleware.Protected(), validate.GetById("theaterId"), handler.DeleteTheater)

	showing := api.Group("/showings")
	showing.Get("/", handler.GetShowings)
	showing.Get("/:showingId", validate.GetById("showingId"), handler.GetShowingById)
	showing.Post("/", middleware.Protected(), validate.CreateShowing(), handler.CreateShowing)
	showing.Put("/:showingId", middleware.Protected(), validate.EditShowing("showingId"), handler.EditShowing)
	showing.Delete("/:showingId", middleware.Protected(), validate.GetById("showingId"), handler.DeleteShowing)

	ticket := api.Group("/tickets")
	ticket.Get("/", handler.GetTickets)
	ticket.Get("/:ticketId", validate.GetById("ticketId"), handler.GetTicketById)
	ticket.Get("/:ticketId/qrcode", validate.GetById("ticketId"), handler.GetTicketQRCode)
	ticket.Post("/", validate.PurchaseTicket(), handler.PurchaseTicket)
	ticket.Delete("/:ticketId", middleware.Protected(), validate.GetById("ticketId"), handler.DeleteTicket)

	api.Post("/generate-description", handler.GenerateDescription)

	ws := app.Group("/ws")
	ws.Get("/showings/:id", websocket.New(handler.WebSocketConnection))
}
