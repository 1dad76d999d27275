package booking

import (
	"hotel_manager/model"
	"hotel_manager/utils"
	"time"

	"gorm.io/gorm"
)

// blockingStatuses là các trạng thái chiếm phòng theo bất biến no-overlap:
// CANCELLED / NO_SHOW / CHECKED_OUT không còn giữ phòng.
var blockingStatuses = []model.ReservationStatus{
	model.ReservationConfirmed,
	model.ReservationCheckedIn,
}

// Overlaps kiểm tra hai khoảng lưu trú nửa mở [in, out) có giao nhau không.
// Hai khoảng kề nhau (A.out == B.in) KHÔNG tính là trùng — cho phép
// trả phòng và nhận phòng cùng ngày.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// HasConflict kiểm tra phòng đã có đặt phòng nào đè lên khoảng ngày ứng viên chưa.
// excludeId dùng khi sửa một đặt phòng để không tự xung đột với chính nó.
//
// PHẢI chạy bên trong cùng transaction (và sau khi đã khoá row Room) với
// lệnh insert/update theo sau — check-then-act ngoài transaction là race.
func HasConflict(tx *gorm.DB, roomId uint, checkIn, checkOut utils.CustomDate, excludeId uint) (bool, error) {
	query := tx.Model(&model.Reservation{}).
		Where("room_id = ?", roomId).
		Where("status IN ?", blockingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)

	if excludeId != 0 {
		query = query.Where("id <> ?", excludeId)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
