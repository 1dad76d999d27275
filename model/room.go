package model

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomCleaning    RoomStatus = "cleaning"
)

type RoomCategory struct {
	DTO
	Name         string  `gorm:"unique;not null" validate:"required" json:"name"`
	Slug         string  `gorm:"size:64;uniqueIndex" json:"slug"`
	Description  string  `json:"description"`
	BaseRate     float64 `gorm:"not null" validate:"required,gt=0" json:"baseRate"`
	MaxOccupancy int     `gorm:"not null;default:2" json:"maxOccupancy"`
	Rooms        []Room  `gorm:"foreignKey:CategoryId" json:"rooms,omitempty"`
}

type Room struct {
	DTO
	RoomNumber string     `gorm:"size:10;uniqueIndex;not null" validate:"required" json:"roomNumber"`
	Floor      int        `json:"floor"`
	CategoryId uint       `gorm:"not null" json:"categoryId"`
	Category   RoomCategory `gorm:"foreignKey:CategoryId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category"`

	// Giá phòng = Category.BaseRate + PriceAdjustment
	PriceAdjustment float64 `gorm:"default:0" json:"priceAdjustment"`

	// Sức chứa tối đa, nếu 0 thì dùng MaxOccupancy của hạng phòng
	MaxOccupancy int `json:"maxOccupancy"`

	Status   RoomStatus `gorm:"size:20;not null;default:'available'" json:"status"`
	IsActive bool       `gorm:"default:true" json:"isActive"`
}

// NightlyRate trả về giá một đêm đã gộp phụ phí của phòng
func (r *Room) NightlyRate() float64 {
	return r.Category.BaseRate + r.PriceAdjustment
}

// Capacity ưu tiên sức chứa riêng của phòng, fallback về hạng phòng
func (r *Room) Capacity() int {
	if r.MaxOccupancy > 0 {
		return r.MaxOccupancy
	}
	return r.Category.MaxOccupancy
}

type CreateRoomCategoryInput struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	BaseRate     float64 `json:"baseRate" validate:"required,gt=0"`
	MaxOccupancy int     `json:"maxOccupancy" validate:"required,min=1"`
}

type EditRoomCategoryInput struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	BaseRate     *float64 `json:"baseRate" validate:"omitempty,gt=0"`
	MaxOccupancy *int     `json:"maxOccupancy" validate:"omitempty,min=1"`
}

type CreateRoomInput struct {
	RoomNumber      string  `json:"roomNumber" validate:"required"`
	Floor           int     `json:"floor"`
	CategoryId      uint    `json:"categoryId" validate:"required"`
	PriceAdjustment float64 `json:"priceAdjustment"`
	MaxOccupancy    int     `json:"maxOccupancy" validate:"omitempty,min=1"`
}

type EditRoomInput struct {
	RoomNumber      *string  `json:"roomNumber"`
	Floor           *int     `json:"floor"`
	CategoryId      *uint    `json:"categoryId"`
	PriceAdjustment *float64 `json:"priceAdjustment"`
	MaxOccupancy    *int     `json:"maxOccupancy" validate:"omitempty,min=1"`
}

// SetRoomStatusInput: chỉ cho staff chuyển trạng thái dọn phòng / bảo trì,
// trạng thái occupied do engine quản lý
type SetRoomStatusInput struct {
	Status RoomStatus `json:"status" validate:"required,oneof=available maintenance cleaning"`
}

type FilterRoomInput struct {
	Pagination
	CategoryId uint       `query:"categoryId"`
	Status     RoomStatus `query:"status"`
	Floor      *int       `query:"floor"`
	Active     *bool      `query:"active"`
}
