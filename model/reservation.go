package model

import (
	"hotel_manager/utils"
	"time"
)

type ReservationStatus string

const (
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCancelled  ReservationStatus = "CANCELLED"
	ReservationNoShow     ReservationStatus = "NO_SHOW"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentRefundDue     PaymentStatus = "REFUND_DUE"
)

type Reservation struct {
	DTO
	PublicCode string `gorm:"size:20;uniqueIndex" json:"publicCode"` // RES-XXXXXXXX

	RoomId  uint  `gorm:"not null;index" json:"roomId"`
	Room    Room  `gorm:"foreignKey:RoomId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"room"`
	GuestId *uint `gorm:"index" json:"guestId,omitempty"` // null nếu staff đặt hộ khách vãng lai
	Guest   *Guest `gorm:"foreignKey:GuestId;constraint:OnDelete:SET NULL" json:"guest,omitempty"`

	// Khoảng lưu trú nửa mở [CheckInDate, CheckOutDate) — ngày trả phòng không tính là đêm ở
	CheckInDate   utils.CustomDate `gorm:"type:date;not null" json:"checkInDate"`
	CheckOutDate  utils.CustomDate `gorm:"type:date;not null" json:"checkOutDate"`
	Nights        int              `gorm:"not null" json:"nights"`
	OccupantCount int              `gorm:"not null;default:1" json:"occupantCount"`
	TotalAmount   float64          `gorm:"not null" json:"totalAmount"`

	Status        ReservationStatus `gorm:"size:20;not null;default:'CONFIRMED'" json:"status"`
	PaymentStatus PaymentStatus     `gorm:"size:20;not null;default:'PENDING'" json:"paymentStatus"`

	SpecialRequests    string     `json:"specialRequests"`
	CancellationReason string     `json:"cancellationReason"`
	ActualCheckIn      *time.Time `json:"actualCheckIn,omitempty"`
	ActualCheckOut     *time.Time `json:"actualCheckOut,omitempty"`

	GuestName string `json:"guestName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CreatedBy uint   `json:"createdBy"` // staff account, 0 nếu khách tự đặt
}

type CreateReservationInput struct {
	RoomId          uint             `json:"roomId" validate:"required"`
	CheckInDate     utils.CustomDate `json:"checkInDate" validate:"required"`
	CheckOutDate    utils.CustomDate `json:"checkOutDate" validate:"required"`
	OccupantCount   int              `json:"occupantCount" validate:"required,min=1"`
	SpecialRequests string           `json:"specialRequests"`
	GuestName       string           `json:"guestName" validate:"omitempty"`
	Phone           string           `json:"phone" validate:"omitempty"`
	Email           string           `json:"email" validate:"omitempty,email"`
}

// ModifyReservationInput là tập đóng các field được phép sửa —
// không nhận payload tuỳ ý rồi merge thẳng vào UPDATE
type ModifyReservationInput struct {
	CheckInDate     *utils.CustomDate `json:"checkInDate"`
	CheckOutDate    *utils.CustomDate `json:"checkOutDate"`
	OccupantCount   *int              `json:"occupantCount" validate:"omitempty,min=1"`
	SpecialRequests *string           `json:"specialRequests"`
}

type CancelReservationInput struct {
	Reason string `json:"reason" validate:"required"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"required,oneof=PENDING PAID PARTIALLY_PAID REFUND_DUE"`
}

type FilterReservationInput struct {
	Pagination
	RoomId    uint              `query:"roomId"`
	GuestId   uint              `query:"guestId"`
	Status    ReservationStatus `query:"status"`
	StartDate string            `query:"startDate"` // YYYY-MM-DD
	EndDate   string            `query:"endDate"`
}
