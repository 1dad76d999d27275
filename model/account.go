package model

// Account là tài khoản nội bộ của nhân viên khách sạn
type Account struct {
	DTO
	Username string `gorm:"unique;not null" validate:"required" json:"username"`
	Password string `gorm:"not null" json:"-"`
	FullName string `json:"fullName"`
	Role     string `gorm:"size:20;not null;default:'RECEPTIONIST'" json:"role"` // ADMIN, MANAGER, RECEPTIONIST
	Active   bool   `gorm:"default:true" json:"active"`
}

type CreateAccountInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName"`
	Role     string `json:"role" validate:"required,oneof=ADMIN MANAGER RECEPTIONIST"`
}

type FilterAccountInput struct {
	SearchKey string `query:"searchKey"`
	Role      string `query:"role"`
	Active    *bool  `query:"active"`
	Limit     *int   `query:"limit"`
	Page      *int   `query:"page"`
}
