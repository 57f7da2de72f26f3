package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"theater_manager/constants"
	"theater_manager/database"
	"theater_manager/helper"
	"theater_manager/model"
	"theater_manager/router"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	database.Migrate(db)
	database.DB = db

	app := fiber.New()
	router.SetupRoutes(app)
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := helper.GenerateAccessToken(model.TokenClaim{
		AccountId: 1,
		Username:  "Administration",
		Role:      constants.ROLE_ADMIN,
	})
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded []map[string]any
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func seedTheater(t *testing.T, capacity int) model.Theater {
	t.Helper()
	theater := model.Theater{TheaterNumber: 7, SeatCapacity: capacity, Status: true}
	require.NoError(t, database.DB.Create(&theater).Error)
	return theater
}

func seedShowing(t *testing.T, theater model.Theater, seats int) model.Showing {
	t.Helper()
	showing := model.Showing{
		MovieId:        1,
		TheaterId:      theater.ID,
		ShowTime:       time.Now().Add(48 * time.Hour).UTC(),
		AvailableSeats: seats,
		Status:         true,
	}
	require.NoError(t, database.DB.Create(&showing).Error)
	return showing
}

func TestLoginIssuesToken(t *testing.T) {
	app := setupApp(t)

	hash, err := helper.HashPassword("secret123")
	require.NoError(t, err)
	require.NoError(t, database.DB.Create(&model.Account{
		Username: "staff1", Password: hash, Active: true, Role: constants.ROLE_STAFF,
	}).Error)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "staff1",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["accessToken"])
	assert.NotEmpty(t, body["refreshToken"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "staff1",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMovieCRUD(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)

	resp, created := doJSON(t, app, http.MethodPost, "/api/movies", token, fiber.Map{
		"name":         "The Long Intermission",
		"duration":     128,
		"release_date": "2025-11-07",
		"featured":     true,
		"rating":       8.4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	movieId := created["movie_id"].(string)
	assert.Equal(t, "the-long-intermission", created["slug"])
	assert.Equal(t, true, created["status"])

	resp, fetched := doJSON(t, app, http.MethodGet, "/api/movies/"+movieId, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "The Long Intermission", fetched["name"])

	resp, list := doJSONList(t, app, "/api/movies")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 1)

	resp, updated := doJSON(t, app, http.MethodPut, "/api/movies/"+movieId, token, fiber.Map{
		"duration": 131,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 131, updated["duration"])
	assert.Equal(t, "The Long Intermission", updated["name"])

	// Soft delete flips status and is idempotent.
	resp, deleted := doJSON(t, app, http.MethodDelete, "/api/movies/"+movieId, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, deleted["status"])

	resp, deleted = doJSON(t, app, http.MethodDelete, "/api/movies/"+movieId, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, deleted["status"])

	resp, fetched = doJSON(t, app, http.MethodGet, "/api/movies/"+movieId, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, fetched["status"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/movies/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovieMutationsRequireAuth(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/movies", "", fiber.Map{
		"name":         "Unauthorized",
		"duration":     90,
		"release_date": "2026-01-01",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMovieValidation(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/movies", token, fiber.Map{
		"name":         "Overrated",
		"duration":     100,
		"release_date": "2026-01-01",
		"rating":       11,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/movies", token, fiber.Map{
		"name":         "Undated",
		"duration":     100,
		"release_date": "tomorrow",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTheaterCapacityPolicy(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)

	resp, created := doJSON(t, app, http.MethodPost, "/api/theaters", token, fiber.Map{
		"theater_number": 1,
		"seat_capacity":  50,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 50, created["seat_capacity"])

	resp, body := doJSON(t, app, http.MethodPost, "/api/theaters", token, fiber.Map{
		"theater_number": 2,
		"seat_capacity":  51,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "seat_capacity must be at most 50")
}

func TestShowingCreateInitializesSeats(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)
	theater := seedTheater(t, 30)

	showTime := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	resp, created := doJSON(t, app, http.MethodPost, "/api/showings", token, fiber.Map{
		"movie_id":   1,
		"theater_id": theater.ID,
		"show_time":  showTime,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 30, created["available_seats"])

	// Explicit count above capacity is clamped, not rejected.
	resp, created = doJSON(t, app, http.MethodPost, "/api/showings", token, fiber.Map{
		"movie_id":        1,
		"theater_id":      theater.ID,
		"show_time":       showTime,
		"available_seats": 500,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 30, created["available_seats"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/showings", token, fiber.Map{
		"movie_id":   1,
		"theater_id": 999,
		"show_time":  showTime,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShowingListFilterByMovie(t *testing.T) {
	app := setupApp(t)
	theater := seedTheater(t, 10)

	first := seedShowing(t, theater, 10)
	second := model.Showing{
		MovieId: 2, TheaterId: theater.ID,
		ShowTime: time.Now().Add(24 * time.Hour), AvailableSeats: 10, Status: true,
	}
	require.NoError(t, database.DB.Create(&second).Error)

	resp, list := doJSONList(t, app, "/api/showings")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 2)

	resp, list = doJSONList(t, app, fmt.Sprintf("/api/showings?movie_id=%d", first.MovieId))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, utils.FormatID(first.ID), list[0]["showing_id"])
}

func TestShowingEditKeepsSeatCountAfterSale(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)
	theater := seedTheater(t, 5)
	showing := seedShowing(t, theater, 5)
	showingPath := "/api/showings/" + utils.FormatID(showing.ID)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/tickets", "", fiber.Map{
		"showing_id": showing.ID,
		"seat_label": "A1",
		"age":        "adult",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// An edit that carries no available_seats must not write the seat
	// column, so the sale's decrement stays in place.
	resp, edited := doJSON(t, app, http.MethodPut, showingPath, token, fiber.Map{
		"show_time": time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"status":    true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 4, edited["available_seats"])

	var current model.Showing
	require.NoError(t, database.DB.First(&current, showing.ID).Error)
	assert.Equal(t, 4, current.AvailableSeats)

	// An explicit seat edit is applied, clamped to capacity.
	resp, edited = doJSON(t, app, http.MethodPut, showingPath, token, fiber.Map{
		"available_seats": 99,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, edited["available_seats"])
}

func TestTicketPurchaseAndRelease(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)
	theater := seedTheater(t, 10)
	showing := seedShowing(t, theater, 1)

	resp, ticket := doJSON(t, app, http.MethodPost, "/api/tickets", "", fiber.Map{
		"showing_id": showing.ID,
		"seat_label": "A1",
		"age":        "kid",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 8, ticket["price"])
	ticketId := ticket["ticket_id"].(string)

	var current model.Showing
	require.NoError(t, database.DB.First(&current, showing.ID).Error)
	assert.Equal(t, 0, current.AvailableSeats)

	// Sold out now.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/tickets", "", fiber.Map{
		"showing_id": showing.ID,
		"seat_label": "A2",
		"age":        "adult",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/tickets/"+ticketId, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, database.DB.First(&current, showing.ID).Error)
	assert.Equal(t, 1, current.AvailableSeats)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/tickets/"+ticketId, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, database.DB.First(&current, showing.ID).Error)
	assert.Equal(t, 1, current.AvailableSeats)
}

func TestTicketPurchaseValidation(t *testing.T) {
	app := setupApp(t)
	theater := seedTheater(t, 5)
	showing := seedShowing(t, theater, 5)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/tickets", "", fiber.Map{
		"showing_id": showing.ID,
		"seat_label": "A1",
		"age":        "toddler",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/tickets", "", fiber.Map{
		"showing_id": 999,
		"seat_label": "A1",
		"age":        "adult",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTicketQRCode(t *testing.T) {
	app := setupApp(t)
	theater := seedTheater(t, 5)
	showing := seedShowing(t, theater, 5)

	_, ticket := doJSON(t, app, http.MethodPost, "/api/tickets", "", fiber.Map{
		"showing_id": showing.ID,
		"seat_label": "C3",
		"age":        "senior",
	})
	ticketId := ticket["ticket_id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/tickets/"+ticketId+"/qrcode", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
}
