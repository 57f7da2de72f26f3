package helper

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"theater_manager/database"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func createTheater(t *testing.T, db *gorm.DB, capacity int) model.Theater {
	t.Helper()
	theater := model.Theater{TheaterNumber: 1, SeatCapacity: capacity, Status: true}
	require.NoError(t, db.Create(&theater).Error)
	return theater
}

func createShowing(t *testing.T, db *gorm.DB, theaterId uint, seats *int) *model.Showing {
	t.Helper()
	showing, err := InitializeShowing(db, model.CreateShowingInput{
		MovieId:        1,
		TheaterId:      theaterId,
		AvailableSeats: seats,
	}, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	return showing
}

func TestInitializeShowingDefaultsToCapacity(t *testing.T) {
	db := newTestDB(t)
	theater := createTheater(t, db, 10)

	showing := createShowing(t, db, theater.ID, nil)
	assert.Equal(t, 10, showing.AvailableSeats)
	assert.True(t, showing.Status)
}

func TestInitializeShowingClampsRequestedSeats(t *testing.T) {
	db := newTestDB(t)
	theater := createTheater(t, db, 10)

	over := createShowing(t, db, theater.ID, utils.Ptr(99))
	assert.Equal(t, 10, over.AvailableSeats)

	under := createShowing(t, db, theater.ID, utils.Ptr(-5))
	assert.Equal(t, 0, under.AvailableSeats)

	exact := createShowing(t, db, theater.ID, utils.Ptr(4))
	assert.Equal(t, 4, exact.AvailableSeats)
}

func TestInitializeShowingUnknownTheater(t *testing.T) {
	db := newTestDB(t)

	_, err := InitializeShowing(db, model.CreateShowingInput{
		MovieId:   1,
		TheaterId: 999,
	}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSellTicketUntilSoldOut(t *testing.T) {
	db := newTestDB(t)
	theater := createTheater(t, db, 10)
	showing := createShowing(t, db, theater.ID, utils.Ptr(3))

	for i := 0; i < 3; i++ {
		ticket, err := SellTicket(db, showing.ID, fmt.Sprintf("A%d", i+1), model.AgeAdult)
		require.NoError(t, err)
		assert.NotEmpty(t, ticket.TicketCode)
		assert.Equal(t, 10.0, ticket.Price)
	}

	var current model.Showing
	require.NoError(t, db.First(&current, showing.ID).Error)
	assert.Equal(t, 0, current.AvailableSeats)

	_, err := SellTicket(db, showing.ID, "A4", model.AgeAdult)
	assert.ErrorIs(t, err, ErrSoldOut)

	var count int64
	db.Model(&model.Ticket{}).Where("showing_id = ?", showing.ID).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestSellTicketUnknownShowing(t *testing.T) {
	db := newTestDB(t)

	_, err := SellTicket(db, 42, "A1", model.AgeAdult)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	db := newTestDB(t)
	theater := createTheater(t, db, 5)
	showing := createShowing(t, db, theater.ID, nil)

	const buyers = 20
	var wg sync.WaitGroup
	results := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := SellTicket(db, showing.ID, fmt.Sprintf("B%d", n), model.AgeAdult)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	sold, soldOut := 0, 0
	for err := range results {
		switch {
		case err == nil:
			sold++
		default:
			require.ErrorIs(t, err, ErrSoldOut)
			soldOut++
		}
	}

	assert.Equal(t, 5, sold)
	assert.Equal(t, buyers-5, soldOut)

	var current model.Showing
	require.NoError(t, db.First(&current, showing.ID).Error)
	assert.Equal(t, 0, current.AvailableSeats)

	var count int64
	db.Model(&model.Ticket{}).Where("showing_id = ?", showing.ID).Count(&count)
	assert.EqualValues(t, 5, count)
}

func TestReleaseTicketRestoresExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	theater := createTheater(t, db, 10)
	showing := createShowing(t, db, theater.ID, utils.Ptr(2))

	ticket, err := SellTicket(db, showing.ID, "A1", model.AgeKid)
	require.NoError(t, err)

	released, err := ReleaseTicket(db, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.TicketCode, released.TicketCode)

	var current model.Showing
	require.NoError(t, db.First(&current, showing.ID).Error)
	assert.Equal(t, 2, current.AvailableSeats)

	_, err = ReleaseTicket(db, ticket.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.First(&current, showing.ID).Error)
	assert.Equal(t, 2, current.AvailableSeats)
}

func TestReleaseTicketClampedAtCapacity(t *testing.T) {
	db := newTestDB(t)
	theater := createTheater(t, db, 2)
	showing := createShowing(t, db, theater.ID, nil)

	ticket, err := SellTicket(db, showing.ID, "A1", model.AgeSenior)
	require.NoError(t, err)

	// Force the count to capacity behind the core's back; the release
	// increment must not push past it.
	require.NoError(t, db.Model(&model.Showing{}).Where("id = ?", showing.ID).
		Update("available_seats", theater.SeatCapacity).Error)

	_, err = ReleaseTicket(db, ticket.ID)
	require.NoError(t, err)

	var current model.Showing
	require.NoError(t, db.First(&current, showing.ID).Error)
	assert.Equal(t, 2, current.AvailableSeats)
}

func TestReleaseTicketAfterShowingSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	theater := createTheater(t, db, 5)
	showing := createShowing(t, db, theater.ID, nil)

	ticket, err := SellTicket(db, showing.ID, "A1", model.AgeAdult)
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Showing{}).Where("id = ?", showing.ID).
		Update("status", false).Error)

	_, err = ReleaseTicket(db, ticket.ID)
	require.NoError(t, err)

	var current model.Showing
	require.NoError(t, db.First(&current, showing.ID).Error)
	assert.Equal(t, 5, current.AvailableSeats)
	assert.False(t, current.Status)
}

func TestFullHouseScenario(t *testing.T) {
	db := newTestDB(t)
	theater := createTheater(t, db, 50)
	showing := createShowing(t, db, theater.ID, nil)
	require.Equal(t, 50, showing.AvailableSeats)

	tickets := make([]*model.Ticket, 0, 50)
	for i := 0; i < 50; i++ {
		ticket, err := SellTicket(db, showing.ID, fmt.Sprintf("S%d", i+1), model.AgeAdult)
		require.NoError(t, err)
		tickets = append(tickets, ticket)
	}

	var current model.Showing
	require.NoError(t, db.First(&current, showing.ID).Error)
	require.Equal(t, 0, current.AvailableSeats)

	_, err := SellTicket(db, showing.ID, "S51", model.AgeAdult)
	require.ErrorIs(t, err, ErrSoldOut)

	_, err = ReleaseTicket(db, tickets[0].ID)
	require.NoError(t, err)
	require.NoError(t, db.First(&current, showing.ID).Error)
	require.Equal(t, 1, current.AvailableSeats)

	_, err = SellTicket(db, showing.ID, "S1", model.AgeAdult)
	require.NoError(t, err)
	require.NoError(t, db.First(&current, showing.ID).Error)
	require.Equal(t, 0, current.AvailableSeats)
}
