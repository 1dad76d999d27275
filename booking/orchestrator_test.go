package booking

import (
	"errors"
	"hotel_manager/model"
	"hotel_manager/utils"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "booking.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.RoomCategory{},
		&model.Room{},
		&model.Guest{},
		&model.Reservation{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, baseRate float64, maxOccupancy int) *model.Room {
	t.Helper()

	category := model.RoomCategory{
		Name:         "Standard " + t.Name(),
		Slug:         "standard-" + t.Name(),
		BaseRate:     baseRate,
		MaxOccupancy: maxOccupancy,
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	room := model.Room{
		RoomNumber: "101",
		Floor:      1,
		CategoryId: category.ID,
		Status:     model.RoomAvailable,
		IsActive:   true,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	room.Category = category
	return &room
}

func createInput(roomId uint, checkIn, checkOut utils.CustomDate) model.CreateReservationInput {
	return model.CreateReservationInput{
		RoomId:        roomId,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		OccupantCount: 2,
		GuestName:     "Nguyen Van A",
		Email:         "guest@example.com",
	}
}

func today() utils.CustomDate {
	now := time.Now().UTC()
	return utils.NewCustomDate(now.Year(), now.Month(), now.Day())
}

func addDays(d utils.CustomDate, days int) utils.CustomDate {
	return utils.CustomDate{Time: d.AddDate(0, 0, days)}
}

func TestCreateReservationComputesPrice(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5)), nil, 1)
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	if res.Nights != 4 {
		t.Errorf("nights = %d, want 4", res.Nights)
	}
	if res.TotalAmount != 400 {
		t.Errorf("total = %v, want 400", res.TotalAmount)
	}
	if res.Status != model.ReservationConfirmed {
		t.Errorf("status = %s, want CONFIRMED", res.Status)
	}
	if res.PaymentStatus != model.PaymentPending {
		t.Errorf("paymentStatus = %s, want PENDING", res.PaymentStatus)
	}
	if res.PublicCode == "" {
		t.Error("publicCode is empty")
	}
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	in := utils.NewCustomDate(2024, 3, 1)
	out := utils.NewCustomDate(2024, 3, 5)
	if _, err := CreateReservation(db, createInput(room.ID, in, out), nil, 1); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Đè một phần lên kỳ đã đặt
	_, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 4), utils.NewCustomDate(2024, 3, 8)), nil, 1)
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("err = %v, want ErrRoomUnavailable", err)
	}
}

func TestCreateReservationAllowsAdjacentStay(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	if _, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5)), nil, 1); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Ngày trả phòng của A là ngày nhận phòng của B — khoảng nửa mở, hợp lệ
	if _, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 5), utils.NewCustomDate(2024, 3, 8)), nil, 1); err != nil {
		t.Errorf("adjacent create: %v, want success", err)
	}
}

func TestCreateReservationRejectsInvalidRange(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	for _, out := range []utils.CustomDate{
		utils.NewCustomDate(2024, 3, 1), // same day
		utils.NewCustomDate(2024, 2, 27),
	} {
		_, err := CreateReservation(db, createInput(room.ID, utils.NewCustomDate(2024, 3, 1), out), nil, 1)
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("checkOut=%s: err = %v, want ErrInvalidDateRange", out, err)
		}
	}
}

func TestCreateReservationAtomicOnOccupancyFailure(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	input := createInput(room.ID, utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5))
	input.OccupantCount = 5

	_, err := CreateReservation(db, input, nil, 1)
	if !errors.Is(err, ErrOccupancyExceeded) {
		t.Fatalf("err = %v, want ErrOccupancyExceeded", err)
	}

	// Transaction rollback: không còn row đặt phòng nào
	var count int64
	db.Model(&model.Reservation{}).Where("room_id = ?", room.ID).Count(&count)
	if count != 0 {
		t.Errorf("reservation count = %d, want 0", count)
	}
}

func TestCancelThenRebookSameDates(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	in := utils.NewCustomDate(2024, 3, 1)
	out := utils.NewCustomDate(2024, 3, 5)

	res, err := CreateReservation(db, createInput(room.ID, in, out), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled, err := CancelReservation(db, res.PublicCode, "change of plans")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.ReservationCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
	if cancelled.CancellationReason != "change of plans" {
		t.Errorf("reason = %q", cancelled.CancellationReason)
	}

	// Đặt phòng huỷ rồi không còn giữ phòng
	if _, err := CreateReservation(db, createInput(room.ID, in, out), nil, 1); err != nil {
		t.Errorf("rebook after cancel: %v, want success", err)
	}
}

func TestCancelPaidReservationFlagsRefund(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5)), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := UpdatePaymentStatus(db, res.PublicCode, model.PaymentPaid); err != nil {
		t.Fatalf("update payment: %v", err)
	}

	cancelled, err := CancelReservation(db, res.PublicCode, "no longer travelling")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.PaymentStatus != model.PaymentRefundDue {
		t.Errorf("paymentStatus = %s, want REFUND_DUE", cancelled.PaymentStatus)
	}
}

func TestCheckOutRequiresCheckedIn(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5)), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = CheckOut(db, res.PublicCode)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("err = %v, want ErrIllegalTransition", err)
	}
}

func TestCheckInBeforeArrivalDateRejected(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res, err := CreateReservation(db, createInput(room.ID,
		addDays(today(), 3), addDays(today(), 5)), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = CheckIn(db, res.PublicCode)
	if !errors.Is(err, ErrPrematureCheckIn) {
		t.Errorf("err = %v, want ErrPrematureCheckIn", err)
	}
}

func TestCheckInThenCheckOutLifecycle(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res, err := CreateReservation(db, createInput(room.ID, today(), addDays(today(), 2)), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Đặt cho hôm nay → phòng occupied ngay từ lúc tạo
	var dbRoom model.Room
	db.First(&dbRoom, room.ID)
	if dbRoom.Status != model.RoomOccupied {
		t.Errorf("room status after same-day create = %s, want occupied", dbRoom.Status)
	}

	checkedIn, err := CheckIn(db, res.PublicCode)
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if checkedIn.Status != model.ReservationCheckedIn {
		t.Errorf("status = %s, want CHECKED_IN", checkedIn.Status)
	}
	if checkedIn.ActualCheckIn == nil {
		t.Error("actualCheckIn not recorded")
	}

	checkedOut, err := CheckOut(db, res.PublicCode)
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if checkedOut.Status != model.ReservationCheckedOut {
		t.Errorf("status = %s, want CHECKED_OUT", checkedOut.Status)
	}
	if checkedOut.ActualCheckOut == nil {
		t.Error("actualCheckOut not recorded")
	}

	db.First(&dbRoom, room.ID)
	if dbRoom.Status != model.RoomAvailable {
		t.Errorf("room status after check-out = %s, want available", dbRoom.Status)
	}
}

func TestMarkNoShowReleasesRoom(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	// Seed thẳng một đặt phòng CONFIRMED đã qua ngày nhận phòng,
	// phòng đang occupied bởi chính nó
	res := model.Reservation{
		PublicCode:    "RES-NOSHOW1",
		RoomId:        room.ID,
		CheckInDate:   addDays(today(), -2),
		CheckOutDate:  addDays(today(), 1),
		Nights:        3,
		OccupantCount: 1,
		TotalAmount:   300,
		Status:        model.ReservationConfirmed,
		PaymentStatus: model.PaymentPending,
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	db.Model(&model.Room{}).Where("id = ?", room.ID).Update("status", model.RoomOccupied)

	marked, err := MarkNoShow(db, res.PublicCode)
	if err != nil {
		t.Fatalf("mark no-show: %v", err)
	}
	if marked.Status != model.ReservationNoShow {
		t.Errorf("status = %s, want NO_SHOW", marked.Status)
	}

	var dbRoom model.Room
	db.First(&dbRoom, room.ID)
	if dbRoom.Status != model.RoomAvailable {
		t.Errorf("room status = %s, want available", dbRoom.Status)
	}

	// NO_SHOW không còn giữ phòng — khoảng ngày đó đặt lại được
	if _, err := CreateReservation(db, createInput(room.ID, addDays(today(), -2), addDays(today(), 1)), nil, 1); err != nil {
		t.Errorf("rebook after no-show: %v, want success", err)
	}
}

func TestModifyReservationReconflictsOnDateChange(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	if _, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 10), utils.NewCustomDate(2024, 3, 15)), nil, 1); err != nil {
		t.Fatalf("create blocker: %v", err)
	}

	res, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5)), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newOut := utils.NewCustomDate(2024, 3, 12)
	_, err = ModifyReservation(db, res.PublicCode, model.ModifyReservationInput{
		CheckOutDate: &newOut,
	})
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("err = %v, want ErrRoomUnavailable", err)
	}

	// Giá và ngày không đổi sau lần sửa thất bại
	var unchanged model.Reservation
	db.Where("public_code = ?", res.PublicCode).First(&unchanged)
	if unchanged.TotalAmount != 400 || unchanged.Nights != 4 {
		t.Errorf("reservation mutated after failed modify: nights=%d total=%v", unchanged.Nights, unchanged.TotalAmount)
	}
}

func TestModifyReservationRecomputesPrice(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5)), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newOut := utils.NewCustomDate(2024, 3, 8)
	updated, err := ModifyReservation(db, res.PublicCode, model.ModifyReservationInput{
		CheckOutDate: &newOut,
	})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if updated.Nights != 7 {
		t.Errorf("nights = %d, want 7", updated.Nights)
	}
	if updated.TotalAmount != 700 {
		t.Errorf("total = %v, want 700", updated.TotalAmount)
	}

	// Dời chính kỳ của mình không tự xung đột với chính nó
	newIn := utils.NewCustomDate(2024, 3, 2)
	if _, err := ModifyReservation(db, res.PublicCode, model.ModifyReservationInput{
		CheckInDate: &newIn,
	}); err != nil {
		t.Errorf("shrink own stay: %v, want success", err)
	}
}

func TestModifyTerminalReservationRejected(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5)), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := CancelReservation(db, res.PublicCode, "x"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	occupants := 1
	_, err = ModifyReservation(db, res.PublicCode, model.ModifyReservationInput{
		OccupantCount: &occupants,
	})
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("err = %v, want ErrIllegalTransition", err)
	}
}

func TestUpdatePaymentStatusOnTerminalReservation(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res, err := CreateReservation(db, createInput(room.ID,
		utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5)), nil, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := UpdatePaymentStatus(db, res.PublicCode, model.PaymentPaid); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if _, err := CancelReservation(db, res.PublicCode, "x"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Bookkeeping hoàn tiền vẫn đi qua được trên trạng thái kết thúc
	updated, err := UpdatePaymentStatus(db, res.PublicCode, model.PaymentPending)
	if err != nil {
		t.Fatalf("update payment on cancelled: %v", err)
	}
	if updated.PaymentStatus != model.PaymentPending {
		t.Errorf("paymentStatus = %s, want PENDING", updated.PaymentStatus)
	}
}

func TestUnknownReservationCode(t *testing.T) {
	db := setupDB(t)
	seedRoom(t, db, 100, 2)

	if _, err := CancelReservation(db, "RES-MISSING1", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cancel: err = %v, want ErrNotFound", err)
	}
	if _, err := CheckIn(db, "RES-MISSING1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("check-in: err = %v, want ErrNotFound", err)
	}
}

// Hai yêu cầu đặt cùng phòng cùng khoảng ngày chạy song song:
// đúng một cái thắng, cái còn lại nhận lỗi đã phân loại.
func TestConcurrentCreateExactlyOneWins(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	in := utils.NewCustomDate(2024, 6, 1)
	out := utils.NewCustomDate(2024, 6, 5)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = CreateReservation(db, createInput(room.ID, in, out), nil, 1)
		}(i)
	}
	wg.Wait()

	// Thua vì phòng đã bị giữ, hoặc vì lock — cả hai đều là lỗi đã phân loại
	for i, err := range errs {
		if err != nil && !errors.Is(err, ErrRoomUnavailable) && !errors.Is(err, ErrConcurrentModification) {
			t.Errorf("loser %d got unclassified error: %v", i, err)
		}
	}

	// Nếu cả hai cùng fail vì lock, chạy lại tuần tự một lần phải thành công
	if errs[0] != nil && errs[1] != nil {
		if _, err := CreateReservation(db, createInput(room.ID, in, out), nil, 1); err != nil {
			t.Fatalf("sequential retry after double failure: %v", err)
		}
	}

	var count int64
	db.Model(&model.Reservation{}).
		Where("room_id = ? AND status = ?", room.ID, model.ReservationConfirmed).
		Count(&count)
	if count != 1 {
		t.Errorf("confirmed reservations = %d, want exactly 1", count)
	}
}
