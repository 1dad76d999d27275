package booking

import (
	"hotel_manager/model"
	"hotel_manager/utils"
	"testing"
	"time"
)

func reservationFor(in, out time.Time) *model.Reservation {
	return &model.Reservation{
		CheckInDate:  utils.CustomDate{Time: in},
		CheckOutDate: utils.CustomDate{Time: out},
	}
}

func TestNextRoomStatusOnCreate(t *testing.T) {
	now := date(2024, 3, 10)
	room := &model.Room{Status: model.RoomAvailable}

	// Đặt cho hôm nay → chiếm phòng ngay
	status, ok := NextRoomStatus(room, reservationFor(date(2024, 3, 10), date(2024, 3, 12)), EventCreated, now)
	if !ok || status != model.RoomOccupied {
		t.Errorf("same-day create: got (%s, %v), want (occupied, true)", status, ok)
	}

	// Đặt cho tương lai → phòng giữ nguyên
	if _, ok := NextRoomStatus(room, reservationFor(date(2024, 3, 15), date(2024, 3, 17)), EventCreated, now); ok {
		t.Error("future create: room status should not change")
	}
}

func TestNextRoomStatusOnCheckInOut(t *testing.T) {
	now := date(2024, 3, 10)
	res := reservationFor(date(2024, 3, 10), date(2024, 3, 12))

	status, ok := NextRoomStatus(&model.Room{Status: model.RoomAvailable}, res, EventCheckedIn, now)
	if !ok || status != model.RoomOccupied {
		t.Errorf("check-in: got (%s, %v), want (occupied, true)", status, ok)
	}

	status, ok = NextRoomStatus(&model.Room{Status: model.RoomOccupied}, res, EventCheckedOut, now)
	if !ok || status != model.RoomAvailable {
		t.Errorf("check-out: got (%s, %v), want (available, true)", status, ok)
	}
}

func TestNextRoomStatusOnCancel(t *testing.T) {
	now := date(2024, 3, 10)

	// Huỷ đặt phòng đang trong kỳ lưu trú của chính nó → trả phòng
	status, ok := NextRoomStatus(
		&model.Room{Status: model.RoomOccupied},
		reservationFor(date(2024, 3, 9), date(2024, 3, 12)),
		EventCancelled, now)
	if !ok || status != model.RoomAvailable {
		t.Errorf("in-stay cancel: got (%s, %v), want (available, true)", status, ok)
	}

	// Huỷ đặt phòng tương lai → không đụng vào phòng
	if _, ok := NextRoomStatus(
		&model.Room{Status: model.RoomOccupied},
		reservationFor(date(2024, 3, 15), date(2024, 3, 17)),
		EventCancelled, now); ok {
		t.Error("future cancel must not release a room occupied by someone else")
	}

	// Phòng không occupied thì không có gì để trả
	if _, ok := NextRoomStatus(
		&model.Room{Status: model.RoomCleaning},
		reservationFor(date(2024, 3, 9), date(2024, 3, 12)),
		EventCancelled, now); ok {
		t.Error("cancel must not override a cleaning room")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aIn, aOut, bIn, bOut   time.Time
		want                   bool
	}{
		{"identical", date(2024, 3, 1), date(2024, 3, 5), date(2024, 3, 1), date(2024, 3, 5), true},
		{"partial", date(2024, 3, 1), date(2024, 3, 5), date(2024, 3, 4), date(2024, 3, 8), true},
		{"contained", date(2024, 3, 1), date(2024, 3, 10), date(2024, 3, 3), date(2024, 3, 5), true},
		{"adjacent", date(2024, 3, 1), date(2024, 3, 5), date(2024, 3, 5), date(2024, 3, 8), false},
		{"disjoint", date(2024, 3, 1), date(2024, 3, 3), date(2024, 3, 10), date(2024, 3, 12), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aIn, tc.aOut, tc.bIn, tc.bOut); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// Đối xứng
			if got := Overlaps(tc.bIn, tc.bOut, tc.aIn, tc.aOut); got != tc.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}
