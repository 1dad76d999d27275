package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"hotel_manager/booking"
	"hotel_manager/database"
	"hotel_manager/helper"
	"hotel_manager/model"
	"hotel_manager/utils"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

// bookingErrorResponse map lỗi engine sang HTTP status; lỗi đã phân loại
// không bao giờ trả 500
func bookingErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidDateRange):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Khoảng ngày không hợp lệ", err)
	case errors.Is(err, booking.ErrOccupancyExceeded):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Vượt quá sức chứa của phòng", err)
	case errors.Is(err, booking.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đặt phòng hoặc phòng", err)
	case errors.Is(err, booking.ErrRoomUnavailable):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Phòng đã có người đặt trong khoảng ngày này", err)
	case errors.Is(err, booking.ErrIllegalTransition):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Trạng thái đặt phòng không cho phép thao tác này", err)
	case errors.Is(err, booking.ErrPrematureCheckIn):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Chưa tới ngày nhận phòng", err)
	case errors.Is(err, booking.ErrConcurrentModification):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Đặt phòng đang được xử lý đồng thời, vui lòng thử lại", err)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err)
	}
}

// afterBookingCommit: các side effect best-effort sau khi transaction đã
// commit — fail chỉ log, không bao giờ làm fail booking
func afterBookingCommit(res *model.Reservation) {
	BroadcastRoomStatus(res.RoomId, res.Room.Status)

	if res.Email != "" {
		baseUrl := os.Getenv("APP_BASE_URL")
		utils.SendReservationConfirmationEmail(res.Email, utils.ReservationConfirmationData{
			ReservationCode: res.PublicCode,
			GuestName:       res.GuestName,
			RoomNumber:      res.Room.RoomNumber,
			CheckInDate:     res.CheckInDate.String(),
			CheckOutDate:    res.CheckOutDate.String(),
			Nights:          res.Nights,
			TotalAmount:     res.TotalAmount,
			DetailLink:      fmt.Sprintf("%s/dat-phong/%s", baseUrl, res.PublicCode),
			CancelLink:      fmt.Sprintf("%s/dat-phong/%s/huy", baseUrl, res.PublicCode),
		})
	}
}

// CreateReservation — khách đã đăng nhập tự đặt phòng
func CreateReservation(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateReservationInput)

	guest, ok := c.Locals("guest").(*model.Guest)
	if !ok || guest == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	if input.Email == "" {
		input.Email = guest.Email
	}
	if input.GuestName == "" {
		input.GuestName = guest.UserName
	}
	if input.Phone == "" {
		input.Phone = guest.Phone
	}

	res, err := booking.CreateReservation(database.DB, input, &guest.ID, 0)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	afterBookingCommit(res)
	return utils.SuccessResponse(c, fiber.StatusCreated, res)
}

// CreateReservationForStaff — lễ tân đặt hộ (khách vãng lai không cần tài khoản)
func CreateReservationForStaff(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateReservationInput)

	claim, _, _, _ := helper.GetInfoAccountFromToken(c)
	if claim.AccountId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Phiên đăng nhập không hợp lệ", nil)
	}

	res, err := booking.CreateReservation(database.DB, input, nil, claim.AccountId)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	afterBookingCommit(res)
	return utils.SuccessResponse(c, fiber.StatusCreated, res)
}

// ownedReservation nạp đặt phòng theo code và check quyền: khách chỉ thao tác
// trên đặt phòng của mình, staff thao tác mọi đặt phòng
func ownedReservation(c *fiber.Ctx, code string) (*model.Reservation, error) {
	var res model.Reservation
	if err := database.DB.Preload("Room").Preload("Room.Category").
		Where("public_code = ?", code).First(&res).Error; err != nil {
		return nil, booking.ErrNotFound
	}

	if guest, ok := c.Locals("guest").(*model.Guest); ok && guest != nil {
		if res.GuestId == nil || *res.GuestId != guest.ID {
			return nil, booking.ErrNotFound
		}
		return &res, nil
	}

	claim, _, _, _ := helper.GetInfoAccountFromToken(c)
	if claim.AccountId == 0 {
		return nil, booking.ErrNotFound
	}
	return &res, nil
}

func GetMyReservations(c *fiber.Ctx) error {
	guest, ok := c.Locals("guest").(*model.Guest)
	if !ok || guest == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var reservations []model.Reservation
	if err := database.DB.
		Preload("Room").
		Preload("Room.Category").
		Where("guest_id = ?", guest.ID).
		Order("created_at desc").
		Find(&reservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải danh sách đặt phòng", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, reservations)
}

// GetReservationDetail trả chi tiết kèm QR cho quầy lễ tân quét lúc check-in
func GetReservationDetail(c *fiber.Ctx) error {
	code := c.Params("code")

	res, err := ownedReservation(c, code)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	qrBytes, err := utils.GenerateQRCode(res.PublicCode, 400)
	qrBase64 := ""
	if err != nil {
		log.Printf("Lỗi tạo QR cho đặt phòng %s: %v", res.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	response := map[string]interface{}{
		"reservationCode": res.PublicCode,
		"roomNumber":      res.Room.RoomNumber,
		"category":        res.Room.Category.Name,
		"checkInDate":     res.CheckInDate.String(),
		"checkOutDate":    res.CheckOutDate.String(),
		"nights":          res.Nights,
		"occupantCount":   res.OccupantCount,
		"totalAmount":     res.TotalAmount,
		"status":          res.Status,
		"paymentStatus":   res.PaymentStatus,
		"specialRequests": res.SpecialRequests,
		"guestName":       res.GuestName,
		"phone":           res.Phone,
		"email":           res.Email,
		"qrCode":          qrBase64,
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetReservations — danh sách cho staff, có filter + phân trang
func GetReservations(c *fiber.Ctx) error {
	var filter model.FilterReservationInput
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tham số lọc không hợp lệ", err)
	}

	query := database.DB.Model(&model.Reservation{}).
		Preload("Room").
		Preload("Guest")

	if filter.RoomId != 0 {
		query = query.Where("room_id = ?", filter.RoomId)
	}
	if filter.GuestId != 0 {
		query = query.Where("guest_id = ?", filter.GuestId)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		query = query.Where("check_in_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("check_out_date <= ?", filter.EndDate)
	}

	var totalCount int64
	query.Count(&totalCount)

	var reservations []model.Reservation
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("created_at desc").
		Find(&reservations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải danh sách đặt phòng", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       reservations,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func ModifyReservation(c *fiber.Ctx) error {
	code := c.Params("code")
	input := c.Locals("input").(model.ModifyReservationInput)

	// quyền sở hữu check trước, engine giữ phần còn lại
	if _, err := ownedReservation(c, code); err != nil {
		return bookingErrorResponse(c, err)
	}

	res, err := booking.ModifyReservation(database.DB, code, input)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	BroadcastRoomStatus(res.RoomId, res.Room.Status)
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func CancelReservation(c *fiber.Ctx) error {
	code := c.Params("code")
	input := c.Locals("input").(model.CancelReservationInput)

	if _, err := ownedReservation(c, code); err != nil {
		return bookingErrorResponse(c, err)
	}

	res, err := booking.CancelReservation(database.DB, code, input.Reason)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	BroadcastRoomStatus(res.RoomId, res.Room.Status)
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func CheckInReservation(c *fiber.Ctx) error {
	code := c.Params("code")

	res, err := booking.CheckIn(database.DB, code)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	BroadcastRoomStatus(res.RoomId, res.Room.Status)
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func CheckOutReservation(c *fiber.Ctx) error {
	code := c.Params("code")

	res, err := booking.CheckOut(database.DB, code)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	BroadcastRoomStatus(res.RoomId, res.Room.Status)
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

// UpdatePaymentStatus — boundary với collaborator thanh toán
func UpdatePaymentStatus(c *fiber.Ctx) error {
	code := c.Params("code")
	input := c.Locals("input").(model.UpdatePaymentStatusInput)

	res, err := booking.UpdatePaymentStatus(database.DB, code, input.PaymentStatus)
	if err != nil {
		return bookingErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, res)
}
