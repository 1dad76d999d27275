package database

import (
	"hotel_manager/constants"
	"hotel_manager/model"
	"log"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cn"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, Active: true, Role: constants.ROLE_ADMIN},
		{Username: "letan01", Password: HashPassword, Active: true, Role: constants.ROLE_RECEPTIONIST},
	}

	for _, account := range accounts {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	categories := []model.RoomCategory{
		{Name: "Standard", BaseRate: 500000, MaxOccupancy: 2, Description: "Phòng tiêu chuẩn, giường đôi"},
		{Name: "Deluxe", BaseRate: 800000, MaxOccupancy: 2, Description: "Phòng cao cấp, view thành phố"},
		{Name: "Family Suite", BaseRate: 1500000, MaxOccupancy: 4, Description: "Suite gia đình, 2 phòng ngủ"},
	}
	for _, category := range categories {
		category.Slug = slug.Make(category.Name)
		if err := db.Where(model.RoomCategory{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed data for category:", category.Name, "error:", err)
		}
	}

	// Phòng mẫu: 2 phòng mỗi hạng, đánh số theo tầng
	var seeded []model.RoomCategory
	db.Find(&seeded)
	roomNumbers := map[string][]string{
		"Standard":     {"101", "102"},
		"Deluxe":       {"201", "202"},
		"Family Suite": {"301", "302"},
	}
	for _, category := range seeded {
		for _, number := range roomNumbers[category.Name] {
			room := model.Room{
				RoomNumber: number,
				Floor:      int(number[0] - '0'),
				CategoryId: category.ID,
				Status:     model.RoomAvailable,
				IsActive:   true,
			}
			if err := db.Where(model.Room{RoomNumber: number}).FirstOrCreate(&room).Error; err != nil {
				log.Println("failed to seed data for room:", number, "error:", err)
			}
		}
	}
}
