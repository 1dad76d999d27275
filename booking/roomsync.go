package booking

import (
	"hotel_manager/model"
	"hotel_manager/utils"
	"time"

	"gorm.io/gorm"
)

// Event là các sự kiện vòng đời đặt phòng ảnh hưởng tới trạng thái phòng
type Event string

const (
	EventCreated    Event = "CREATED"
	EventCheckedIn  Event = "CHECKED_IN"
	EventCheckedOut Event = "CHECKED_OUT"
	EventCancelled  Event = "CANCELLED"
)

// NextRoomStatus suy ra trạng thái phòng từ một sự kiện đặt phòng.
// Trả về false khi sự kiện không được đụng tới phòng — quyết định gắn với
// khoảng ngày của chính đặt phòng đó, không ghi đè mù trạng thái do một
// đặt phòng khác tạo ra.
func NextRoomStatus(room *model.Room, res *model.Reservation, event Event, now time.Time) (model.RoomStatus, bool) {
	today := utils.DateOnly(now)
	checkIn := utils.DateOnly(res.CheckInDate.Time)
	checkOut := utils.DateOnly(res.CheckOutDate.Time)

	switch event {
	case EventCreated:
		// Đặt cho tương lai thì chưa chiếm phòng
		if today.Equal(checkIn) {
			return model.RoomOccupied, true
		}
		return "", false
	case EventCheckedIn:
		return model.RoomOccupied, true
	case EventCheckedOut:
		// Bàn giao cho housekeeping là việc của collaborator bên ngoài
		return model.RoomAvailable, true
	case EventCancelled:
		// Chỉ trả phòng nếu chính đặt phòng này đang là nguồn của "occupied":
		// phòng đang occupied và hôm nay nằm trong [check_in, check_out)
		if room.Status == model.RoomOccupied &&
			!today.Before(checkIn) && today.Before(checkOut) {
			return model.RoomAvailable, true
		}
		return "", false
	}
	return "", false
}

// Sync áp trạng thái phòng suy ra từ sự kiện, trong transaction của caller
func Sync(tx *gorm.DB, room *model.Room, res *model.Reservation, event Event, now time.Time) error {
	status, ok := NextRoomStatus(room, res, event, now)
	if !ok || status == room.Status {
		return nil
	}

	if err := tx.Model(&model.Room{}).Where("id = ?", room.ID).
		Update("status", status).Error; err != nil {
		return err
	}
	room.Status = status
	return nil
}
