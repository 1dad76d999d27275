package booking

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Các lỗi nghiệp vụ của engine đặt phòng. Handler map sang HTTP status
// bằng errors.Is, không bao giờ trả lỗi 500 chung chung cho các case này.
var (
	ErrInvalidDateRange       = errors.New("check-out date must be after check-in date")
	ErrRoomUnavailable        = errors.New("room is not available for the requested dates")
	ErrOccupancyExceeded      = errors.New("occupant count exceeds room capacity")
	ErrIllegalTransition      = errors.New("reservation status transition is not allowed")
	ErrPrematureCheckIn       = errors.New("cannot check in before the reservation check-in date")
	ErrNotFound               = errors.New("reservation or room not found")
	ErrConcurrentModification = errors.New("reservation was modified concurrently, please retry")
)

// isLockFailure nhận diện lỗi lock/serialization từ store để caller retry.
// Postgres: lock_not_available (55P03), serialization_failure (40001),
// deadlock_detected (40P01). Sqlite (test): busy/locked.
func isLockFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "40001", "40P01":
			return true
		}
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

// classify chuẩn hoá lỗi thoát ra khỏi một transaction của orchestrator
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrRoomUnavailable),
		errors.Is(err, ErrOccupancyExceeded),
		errors.Is(err, ErrIllegalTransition),
		errors.Is(err, ErrPrematureCheckIn),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConcurrentModification):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isLockFailure(err):
		return ErrConcurrentModification
	default:
		return err
	}
}
