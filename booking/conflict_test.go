package booking

import (
	"hotel_manager/model"
	"hotel_manager/utils"
	"testing"
)

func TestHasConflictBlockingStatuses(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	in := utils.NewCustomDate(2024, 3, 1)
	out := utils.NewCustomDate(2024, 3, 5)

	statuses := []struct {
		status model.ReservationStatus
		blocks bool
	}{
		{model.ReservationConfirmed, true},
		{model.ReservationCheckedIn, true},
		{model.ReservationCheckedOut, false},
		{model.ReservationCancelled, false},
		{model.ReservationNoShow, false},
	}

	for i, tc := range statuses {
		res := model.Reservation{
			PublicCode:    "RES-STATUS" + string(rune('A'+i)),
			RoomId:        room.ID,
			CheckInDate:   in,
			CheckOutDate:  out,
			Nights:        4,
			OccupantCount: 1,
			TotalAmount:   400,
			Status:        tc.status,
			PaymentStatus: model.PaymentPending,
		}
		if err := db.Create(&res).Error; err != nil {
			t.Fatalf("seed %s: %v", tc.status, err)
		}

		conflict, err := HasConflict(db, room.ID, in, out, 0)
		if err != nil {
			t.Fatalf("HasConflict: %v", err)
		}
		if conflict != tc.blocks {
			t.Errorf("status %s: conflict = %v, want %v", tc.status, conflict, tc.blocks)
		}

		db.Delete(&res)
	}
}

func TestHasConflictHalfOpenInterval(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res := model.Reservation{
		PublicCode:    "RES-BASE0001",
		RoomId:        room.ID,
		CheckInDate:   utils.NewCustomDate(2024, 3, 5),
		CheckOutDate:  utils.NewCustomDate(2024, 3, 10),
		Nights:        5,
		OccupantCount: 1,
		TotalAmount:   500,
		Status:        model.ReservationConfirmed,
		PaymentStatus: model.PaymentPending,
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := []struct {
		name    string
		in, out utils.CustomDate
		want    bool
	}{
		{"ends on existing check-in", utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 5), false},
		{"starts on existing check-out", utils.NewCustomDate(2024, 3, 10), utils.NewCustomDate(2024, 3, 12), false},
		{"overlaps one night", utils.NewCustomDate(2024, 3, 9), utils.NewCustomDate(2024, 3, 12), true},
		{"fully contains", utils.NewCustomDate(2024, 3, 1), utils.NewCustomDate(2024, 3, 20), true},
		{"inside existing", utils.NewCustomDate(2024, 3, 6), utils.NewCustomDate(2024, 3, 8), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conflict, err := HasConflict(db, room.ID, tc.in, tc.out, 0)
			if err != nil {
				t.Fatalf("HasConflict: %v", err)
			}
			if conflict != tc.want {
				t.Errorf("conflict = %v, want %v", conflict, tc.want)
			}
		})
	}
}

func TestHasConflictExcludesSelf(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	res := model.Reservation{
		PublicCode:    "RES-SELF0001",
		RoomId:        room.ID,
		CheckInDate:   utils.NewCustomDate(2024, 3, 5),
		CheckOutDate:  utils.NewCustomDate(2024, 3, 10),
		Nights:        5,
		OccupantCount: 1,
		TotalAmount:   500,
		Status:        model.ReservationConfirmed,
		PaymentStatus: model.PaymentPending,
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	conflict, err := HasConflict(db, room.ID, res.CheckInDate, res.CheckOutDate, res.ID)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if conflict {
		t.Error("reservation must not conflict with itself when excluded")
	}
}

func TestHasConflictIgnoresOtherRooms(t *testing.T) {
	db := setupDB(t)
	room := seedRoom(t, db, 100, 2)

	other := model.Room{
		RoomNumber: "102",
		Floor:      1,
		CategoryId: room.CategoryId,
		Status:     model.RoomAvailable,
		IsActive:   true,
	}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed other room: %v", err)
	}

	res := model.Reservation{
		PublicCode:    "RES-OTHER001",
		RoomId:        other.ID,
		CheckInDate:   utils.NewCustomDate(2024, 3, 5),
		CheckOutDate:  utils.NewCustomDate(2024, 3, 10),
		Nights:        5,
		OccupantCount: 1,
		TotalAmount:   500,
		Status:        model.ReservationConfirmed,
		PaymentStatus: model.PaymentPending,
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	conflict, err := HasConflict(db, room.ID, res.CheckInDate, res.CheckOutDate, 0)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if conflict {
		t.Error("reservation on another room must not block this room")
	}
}
