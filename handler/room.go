package handler

import (
	"errors"
	"hotel_manager/booking"
	"hotel_manager/database"
	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetRooms(c *fiber.Ctx) error {
	var filter model.FilterRoomInput
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tham số lọc không hợp lệ", err)
	}

	query := database.DB.Model(&model.Room{}).Preload("Category")

	if filter.CategoryId != 0 {
		query = query.Where("category_id = ?", filter.CategoryId)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Floor != nil {
		query = query.Where("floor = ?", *filter.Floor)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var totalCount int64
	query.Count(&totalCount)

	var rooms []model.Room
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải danh sách phòng", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       rooms,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetRoomById(c *fiber.Ctx) error {
	roomId := c.Locals("inputId").(int)

	var room model.Room
	if err := database.DB.Preload("Category").First(&room, roomId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy phòng", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải phòng", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

func CreateRoom(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateRoomInput)

	var category model.RoomCategory
	if err := database.DB.First(&category, input.CategoryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Hạng phòng không tồn tại", err)
	}

	var room model.Room
	if err := copier.Copy(&room, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err)
	}
	room.Status = model.RoomAvailable
	room.IsActive = true

	if err := database.DB.Create(&room).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo phòng thất bại", err)
	}

	room.Category = category
	return utils.SuccessResponse(c, fiber.StatusCreated, room)
}

func EditRoom(c *fiber.Ctx) error {
	roomId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.EditRoomInput)

	var room model.Room
	if err := database.DB.First(&room, roomId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy phòng", err)
	}

	// Tập field đóng — không merge payload tuỳ ý
	updates := map[string]any{}
	if input.RoomNumber != nil {
		updates["room_number"] = *input.RoomNumber
	}
	if input.Floor != nil {
		updates["floor"] = *input.Floor
	}
	if input.CategoryId != nil {
		var category model.RoomCategory
		if err := database.DB.First(&category, *input.CategoryId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Hạng phòng không tồn tại", err)
		}
		updates["category_id"] = *input.CategoryId
	}
	if input.PriceAdjustment != nil {
		updates["price_adjustment"] = *input.PriceAdjustment
	}
	if input.MaxOccupancy != nil {
		updates["max_occupancy"] = *input.MaxOccupancy
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&room).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật phòng thất bại", err)
		}
	}

	database.DB.Preload("Category").First(&room, roomId)
	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

// SetRoomStatus cho staff chuyển phòng sang maintenance/cleaning/available.
// Không cho đặt tay "occupied" — trạng thái đó do engine quản qua sự kiện
// vòng đời đặt phòng.
func SetRoomStatus(c *fiber.Ctx) error {
	roomId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.SetRoomStatusInput)

	var room model.Room
	if err := database.DB.First(&room, roomId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy phòng", err)
	}

	if room.Status == model.RoomOccupied {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Phòng đang có khách, không thể đổi trạng thái tay", nil)
	}

	if err := database.DB.Model(&room).Update("status", input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật trạng thái thất bại", err)
	}

	BroadcastRoomStatus(room.ID, input.Status)
	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

// DisableRoom soft-deactivate: phòng còn đặt phòng tham chiếu thì không bao
// giờ xoá vật lý
func DisableRoom(c *fiber.Ctx) error {
	roomId := c.Locals("inputId").(int)

	var count int64
	database.DB.Model(&model.Reservation{}).
		Where("room_id = ? AND status IN ?", roomId,
			[]model.ReservationStatus{model.ReservationConfirmed, model.ReservationCheckedIn}).
		Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Phòng còn đặt phòng hiệu lực, không thể ngưng hoạt động", nil)
	}

	if err := database.DB.Model(&model.Room{}).Where("id = ?", roomId).
		Update("is_active", false).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Ngưng hoạt động phòng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Đã ngưng hoạt động phòng")
}

func EnableRoom(c *fiber.Ctx) error {
	roomId := c.Locals("inputId").(int)

	if err := database.DB.Model(&model.Room{}).Where("id = ?", roomId).
		Update("is_active", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Kích hoạt phòng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Đã kích hoạt phòng")
}

// GetAvailableRooms trả các phòng trống cho khoảng ngày [checkIn, checkOut):
// đang hoạt động, không bảo trì và không có đặt phòng hiệu lực đè lên
func GetAvailableRooms(c *fiber.Ctx) error {
	checkIn := c.Locals("checkIn").(utils.CustomDate)
	checkOut := c.Locals("checkOut").(utils.CustomDate)

	var rooms []model.Room
	if err := database.DB.Preload("Category").
		Where("is_active = ?", true).
		Where("status <> ?", model.RoomMaintenance).
		Where("NOT EXISTS (?)",
			database.DB.Model(&model.Reservation{}).
				Select("1").
				Where("reservations.room_id = rooms.id").
				Where("reservations.status IN ?",
					[]model.ReservationStatus{model.ReservationConfirmed, model.ReservationCheckedIn}).
				Where("reservations.check_in_date < ? AND reservations.check_out_date > ?", checkOut, checkIn),
		).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tìm phòng trống", err)
	}

	type availableRoom struct {
		model.Room
		NightlyRate float64 `json:"nightlyRate"`
		Total       float64 `json:"total"`
		Nights      int     `json:"nights"`
	}

	response := make([]availableRoom, 0, len(rooms))
	for _, room := range rooms {
		nights, total, err := booking.Calculate(room.NightlyRate(), checkIn.Time, checkOut.Time)
		if err != nil {
			continue
		}
		response = append(response, availableRoom{
			Room:        room,
			NightlyRate: room.NightlyRate(),
			Nights:      nights,
			Total:       total,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
