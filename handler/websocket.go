package handler

import (
	"context"
	"encoding/json"
	"hotel_manager/config"
	"hotel_manager/database"
	"hotel_manager/model"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const roomStatusChannel = "rooms:status"

var (
	redisClient = redis.NewClient(&redis.Options{Addr: redisAddr()})

	clients = make(map[*websocket.Conn]bool)
	mu      sync.Mutex
)

func redisAddr() string {
	if addr := config.Config("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

type roomStatusEvent struct {
	RoomId uint             `json:"roomId"`
	Status model.RoomStatus `json:"status"`
}

// BroadcastRoomStatus đẩy trạng thái phòng mới lên kênh Redis cho dashboard.
// Best-effort: Redis chết thì chỉ log, nghiệp vụ đặt phòng không bị ảnh hưởng.
func BroadcastRoomStatus(roomId uint, status model.RoomStatus) {
	payload, err := json.Marshal(roomStatusEvent{RoomId: roomId, Status: status})
	if err != nil {
		return
	}
	if err := redisClient.Publish(context.Background(), roomStatusChannel, payload).Err(); err != nil {
		log.Printf("Không publish được trạng thái phòng %d: %v", roomId, err)
	}
}

// RoomStatusWebsocket xử lý WS connection cho sơ đồ phòng realtime
func RoomStatusWebsocket(c *websocket.Conn) {
	// Khi WS disconnect → xoá client
	defer func() {
		mu.Lock()
		delete(clients, c)
		mu.Unlock()
		c.Close()
	}()

	// Thêm client mới
	mu.Lock()
	clients[c] = true
	mu.Unlock()

	// Gửi snapshot sơ đồ phòng lần đầu
	rooms, _ := fetchRoomBoard()
	c.WriteJSON(rooms)

	// Sub kênh Redis
	pubsub := redisClient.Subscribe(context.Background(), roomStatusChannel)
	defer pubsub.Close()

	// Lắng nghe message từ Redis
	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients, conn)
			}
		}
		mu.Unlock()
	}
}

func fetchRoomBoard() ([]model.Room, error) {
	var rooms []model.Room

	err := database.DB.
		Where("is_active = ?", true).
		Order("room_number").
		Find(&rooms).Error

	return rooms, err
}
