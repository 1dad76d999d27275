package booking

import (
	"fmt"
	"hotel_manager/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Orchestrator: mỗi operation công khai dưới đây là MỘT transaction
// all-or-nothing. Row Room được khoá FOR UPDATE trước khi check conflict để
// hai CreateReservation chạy song song trên cùng phòng không thể cùng qua
// được bước kiểm tra (check-then-act race). Thao tác trên một đặt phòng đã
// tồn tại khoá thêm row Reservation, luôn theo thứ tự reservation -> room.

// forUpdate khoá row ở mức store. Sqlite (chạy test) không có FOR UPDATE,
// single-writer lock của nó đã đảm bảo loại trừ tương đương.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func newPublicCode() string {
	return "RES-" + strings.ToUpper(uuid.New().String()[:8])
}

// lockRoom khoá và nạp phòng kèm hạng phòng (để tính giá, sức chứa)
func lockRoom(tx *gorm.DB, roomId uint) (*model.Room, error) {
	var room model.Room
	if err := forUpdate(tx).First(&room, "id = ?", roomId).Error; err != nil {
		return nil, err
	}
	if err := tx.First(&room.Category, "id = ?", room.CategoryId).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// lockReservation khoá và nạp đặt phòng theo public code
func lockReservation(tx *gorm.DB, code string) (*model.Reservation, error) {
	var res model.Reservation
	if err := forUpdate(tx).Where("public_code = ?", code).First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateReservation đặt phòng mới: validate ngày → khoá phòng → check conflict
// → check sức chứa → tính giá → ghi đặt phòng CONFIRMED → đồng bộ trạng thái
// phòng → commit. Bất kỳ bước nào fail thì rollback toàn bộ, không còn lại
// row đặt phòng hay thay đổi phòng nào.
func CreateReservation(db *gorm.DB, input model.CreateReservationInput, guestId *uint, createdBy uint) (*model.Reservation, error) {
	if !input.CheckInDate.Time.Before(input.CheckOutDate.Time) {
		return nil, ErrInvalidDateRange
	}

	var created model.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, input.RoomId)
		if err != nil {
			return err
		}
		if !room.IsActive {
			return fmt.Errorf("%w: room %s is deactivated", ErrNotFound, room.RoomNumber)
		}

		conflict, err := HasConflict(tx, room.ID, input.CheckInDate, input.CheckOutDate, 0)
		if err != nil {
			return err
		}
		if conflict {
			return ErrRoomUnavailable
		}

		if input.OccupantCount > room.Capacity() {
			return fmt.Errorf("%w: room %s sleeps %d", ErrOccupancyExceeded, room.RoomNumber, room.Capacity())
		}

		nights, total, err := Calculate(room.NightlyRate(), input.CheckInDate.Time, input.CheckOutDate.Time)
		if err != nil {
			return err
		}

		res := model.Reservation{
			PublicCode:      newPublicCode(),
			RoomId:          room.ID,
			GuestId:         guestId,
			CheckInDate:     input.CheckInDate,
			CheckOutDate:    input.CheckOutDate,
			Nights:          nights,
			OccupantCount:   input.OccupantCount,
			TotalAmount:     total,
			Status:          model.ReservationConfirmed,
			PaymentStatus:   model.PaymentPending,
			SpecialRequests: input.SpecialRequests,
			GuestName:       input.GuestName,
			Phone:           input.Phone,
			Email:           input.Email,
			CreatedBy:       createdBy,
		}
		if err := tx.Create(&res).Error; err != nil {
			return err
		}

		if err := Sync(tx, room, &res, EventCreated, time.Now()); err != nil {
			return err
		}

		res.Room = *room
		created = res
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &created, nil
}

// ModifyReservation sửa một đặt phòng còn hiệu lực. Chỉ nhận tập field đóng
// trong ModifyReservationInput; đổi ngày thì check conflict lại (loại trừ
// chính nó) và tính lại giá.
func ModifyReservation(db *gorm.DB, code string, input model.ModifyReservationInput) (*model.Reservation, error) {
	var updated model.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, code)
		if err != nil {
			return err
		}
		if IsTerminal(res.Status) {
			return fmt.Errorf("%w: reservation is %s", ErrIllegalTransition, res.Status)
		}

		room, err := lockRoom(tx, res.RoomId)
		if err != nil {
			return err
		}

		newCheckIn := res.CheckInDate
		newCheckOut := res.CheckOutDate
		datesChanged := false
		if input.CheckInDate != nil {
			newCheckIn = *input.CheckInDate
			datesChanged = true
		}
		if input.CheckOutDate != nil {
			newCheckOut = *input.CheckOutDate
			datesChanged = true
		}

		if datesChanged {
			if !newCheckIn.Time.Before(newCheckOut.Time) {
				return ErrInvalidDateRange
			}
			conflict, err := HasConflict(tx, room.ID, newCheckIn, newCheckOut, res.ID)
			if err != nil {
				return err
			}
			if conflict {
				return ErrRoomUnavailable
			}

			nights, total, err := Calculate(room.NightlyRate(), newCheckIn.Time, newCheckOut.Time)
			if err != nil {
				return err
			}
			res.CheckInDate = newCheckIn
			res.CheckOutDate = newCheckOut
			res.Nights = nights
			res.TotalAmount = total
		}

		if input.OccupantCount != nil {
			if *input.OccupantCount > room.Capacity() {
				return fmt.Errorf("%w: room %s sleeps %d", ErrOccupancyExceeded, room.RoomNumber, room.Capacity())
			}
			res.OccupantCount = *input.OccupantCount
		}
		if input.SpecialRequests != nil {
			res.SpecialRequests = *input.SpecialRequests
		}

		if err := tx.Save(res).Error; err != nil {
			return err
		}
		res.Room = *room
		updated = *res
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// CancelReservation huỷ đặt phòng (CONFIRMED hoặc CHECKED_IN). Đặt phòng đã
// thanh toán thì chuyển payment status sang REFUND_DUE cho collaborator
// thanh toán xử lý sau.
func CancelReservation(db *gorm.DB, code string, reason string) (*model.Reservation, error) {
	return transition(db, code, model.ReservationCancelled, func(tx *gorm.DB, res *model.Reservation, room *model.Room, now time.Time) error {
		res.CancellationReason = reason
		if res.PaymentStatus == model.PaymentPaid || res.PaymentStatus == model.PaymentPartiallyPaid {
			res.PaymentStatus = model.PaymentRefundDue
		}
		return Sync(tx, room, res, EventCancelled, now)
	})
}

// CheckIn nhận phòng: chỉ hợp lệ từ ngày nhận phòng trở đi
func CheckIn(db *gorm.DB, code string) (*model.Reservation, error) {
	return transition(db, code, model.ReservationCheckedIn, func(tx *gorm.DB, res *model.Reservation, room *model.Room, now time.Time) error {
		res.ActualCheckIn = &now
		return Sync(tx, room, res, EventCheckedIn, now)
	})
}

// CheckOut trả phòng
func CheckOut(db *gorm.DB, code string) (*model.Reservation, error) {
	return transition(db, code, model.ReservationCheckedOut, func(tx *gorm.DB, res *model.Reservation, room *model.Room, now time.Time) error {
		res.ActualCheckOut = &now
		return Sync(tx, room, res, EventCheckedOut, now)
	})
}

// MarkNoShow là policy hook cho sweeper: CONFIRMED đã qua ngày nhận phòng
// mà khách không đến. Giải phóng phòng như một lần huỷ.
func MarkNoShow(db *gorm.DB, code string) (*model.Reservation, error) {
	return transition(db, code, model.ReservationNoShow, func(tx *gorm.DB, res *model.Reservation, room *model.Room, now time.Time) error {
		return Sync(tx, room, res, EventCancelled, now)
	})
}

// transition là khung chung cho các operation đổi trạng thái:
// khoá reservation → khoá room → validate qua state machine → side effect
// riêng của từng operation → persist, tất cả trong một transaction.
func transition(db *gorm.DB, code string, target model.ReservationStatus, apply func(tx *gorm.DB, res *model.Reservation, room *model.Room, now time.Time) error) (*model.Reservation, error) {
	var updated model.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, code)
		if err != nil {
			return err
		}
		room, err := lockRoom(tx, res.RoomId)
		if err != nil {
			return err
		}

		now := time.Now()
		next, err := Transition(res.Status, target, TransitionContext{
			CheckInDate: res.CheckInDate.Time,
			Now:         now,
		})
		if err != nil {
			return err
		}
		res.Status = next

		if err := apply(tx, res, room, now); err != nil {
			return err
		}

		if err := tx.Save(res).Error; err != nil {
			return err
		}
		res.Room = *room
		updated = *res
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}

// UpdatePaymentStatus là boundary với collaborator thanh toán: chỉ ghi field
// payment_status, cho phép cả trên trạng thái kết thúc (bookkeeping hoàn tiền)
func UpdatePaymentStatus(db *gorm.DB, code string, status model.PaymentStatus) (*model.Reservation, error) {
	var updated model.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		res, err := lockReservation(tx, code)
		if err != nil {
			return err
		}
		if err := tx.Model(res).Update("payment_status", status).Error; err != nil {
			return err
		}
		res.PaymentStatus = status
		updated = *res
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &updated, nil
}
