package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"theater_manager/config"
	"theater_manager/database"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	clients    = make(map[uint]map[*websocket.Conn]bool)
	subscribed = make(map[uint]bool)
	mu         sync.Mutex
)

// getRedis lazily opens the pub/sub client. Nil when REDIS_ADDR is not
// configured; updates then fan out to this instance's clients only.
func getRedis() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			log.Println("redis not configured, seat updates limited to local clients")
			return
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

type seatUpdate struct {
	ShowingId      string `json:"showing_id"`
	AvailableSeats int    `json:"available_seats"`
}

func seatUpdatePayload(showingId uint) ([]byte, error) {
	var showing model.Showing
	if err := database.DB.First(&showing, showingId).Error; err != nil {
		return nil, err
	}
	return json.Marshal(seatUpdate{
		ShowingId:      utils.FormatID(showingId),
		AvailableSeats: showing.AvailableSeats,
	})
}

func registerClient(showingId uint, c *websocket.Conn) {
	mu.Lock()
	defer mu.Unlock()
	if clients[showingId] == nil {
		clients[showingId] = make(map[*websocket.Conn]bool)
	}
	clients[showingId][c] = true
}

func unregisterClient(showingId uint, c *websocket.Conn) {
	mu.Lock()
	defer mu.Unlock()
	if clients[showingId] != nil {
		delete(clients[showingId], c)
		if len(clients[showingId]) == 0 {
			delete(clients, showingId)
		}
	}
}

func registeredClientCount(showingId uint) int {
	mu.Lock()
	defer mu.Unlock()
	return len(clients[showingId])
}

// deliverSeatUpdate writes the payload to every connection registered for
// the showing. The lock serializes writers on a connection.
func deliverSeatUpdate(showingId uint, payload []byte) {
	mu.Lock()
	defer mu.Unlock()
	for conn := range clients[showingId] {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(clients[showingId], conn)
			conn.Close()
		}
	}
}

// ensureSubscriber starts one redis subscription per showing, fanning
// incoming updates out to the registered connections. Runs for the life
// of the process once started.
func ensureSubscriber(showingId uint) {
	rdb := getRedis()
	if rdb == nil {
		return
	}

	mu.Lock()
	if subscribed[showingId] {
		mu.Unlock()
		return
	}
	subscribed[showingId] = true
	mu.Unlock()

	go func() {
		pubsub := rdb.Subscribe(
			context.Background(),
			fmt.Sprintf("showing:%d", showingId),
		)
		defer pubsub.Close()
		for msg := range pubsub.Channel() {
			deliverSeatUpdate(showingId, []byte(msg.Payload))
		}
	}()
}

// WebSocketConnection streams seat-availability updates for one showing.
// With redis configured, every server instance sees sells and releases
// regardless of which instance handled them.
func WebSocketConnection(c *websocket.Conn) {
	id64, _ := strconv.ParseUint(c.Params("id"), 10, 64)
	showingId := uint(id64)

	// Snapshot first, then register; the fan-out path owns writes from
	// registration onward.
	if payload, err := seatUpdatePayload(showingId); err == nil {
		c.WriteMessage(websocket.TextMessage, payload)
	}

	registerClient(showingId, c)
	ensureSubscriber(showingId)
	defer func() {
		unregisterClient(showingId, c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// BroadcastShowing pushes the showing's current seat count to listeners.
// Callers invoke it after every sell/release/update; failures only log.
func BroadcastShowing(showingId uint) {
	payload, err := seatUpdatePayload(showingId)
	if err != nil {
		return
	}

	rdb := getRedis()
	if rdb == nil {
		deliverSeatUpdate(showingId, payload)
		return
	}

	if err := rdb.Publish(
		context.Background(),
		fmt.Sprintf("showing:%d", showingId),
		payload,
	).Err(); err != nil {
		log.Printf("failed to broadcast showing %d: %v", showingId, err)
	}
}
