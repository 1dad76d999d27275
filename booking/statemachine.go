package booking

import (
	"fmt"
	"hotel_manager/model"
	"hotel_manager/utils"
	"time"
)

// TransitionContext chứa các mốc ngày mà luật chuyển trạng thái phụ thuộc vào
type TransitionContext struct {
	CheckInDate time.Time
	Now         time.Time
}

// Transition kiểm tra và trả về trạng thái mới cho một yêu cầu chuyển trạng thái.
// Hàm thuần, không side effect — orchestrator là nơi áp kết quả vào DB.
//
// Bảng chuyển hợp lệ:
//
//	CONFIRMED  -> CHECKED_IN   (chỉ từ ngày nhận phòng trở đi)
//	CONFIRMED  -> CANCELLED
//	CONFIRMED  -> NO_SHOW      (chỉ khi đã qua ngày nhận phòng)
//	CHECKED_IN -> CHECKED_OUT
//	CHECKED_IN -> CANCELLED    (huỷ bởi quản trị, vẫn giải phóng phòng)
//
// Mọi chuyển khác đều bị từ chối; CHECKED_OUT / CANCELLED / NO_SHOW là
// trạng thái kết thúc.
func Transition(current, requested model.ReservationStatus, ctx TransitionContext) (model.ReservationStatus, error) {
	today := utils.DateOnly(ctx.Now)
	checkInDay := utils.DateOnly(ctx.CheckInDate)

	switch current {
	case model.ReservationConfirmed:
		switch requested {
		case model.ReservationCheckedIn:
			if today.Before(checkInDay) {
				return "", fmt.Errorf("%w: check-in date is %s", ErrPrematureCheckIn, checkInDay.Format("2006-01-02"))
			}
			return model.ReservationCheckedIn, nil
		case model.ReservationCancelled:
			return model.ReservationCancelled, nil
		case model.ReservationNoShow:
			if !today.After(checkInDay) {
				return "", fmt.Errorf("%w: stay has not started yet", ErrIllegalTransition)
			}
			return model.ReservationNoShow, nil
		}
	case model.ReservationCheckedIn:
		switch requested {
		case model.ReservationCheckedOut:
			return model.ReservationCheckedOut, nil
		case model.ReservationCancelled:
			return model.ReservationCancelled, nil
		}
	}

	return "", fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, requested)
}

// IsTerminal báo trạng thái đã kết thúc, không sửa đổi được nữa
// (trừ ghi chú thanh toán)
func IsTerminal(status model.ReservationStatus) bool {
	switch status {
	case model.ReservationCheckedOut, model.ReservationCancelled, model.ReservationNoShow:
		return true
	}
	return false
}
