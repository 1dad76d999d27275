package helper

import (
	"hotel_manager/database"
	"hotel_manager/model"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

var housekeepingScheduler *cron.Cron

func StartHousekeepingScheduler() {
	housekeepingScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := housekeepingScheduler.AddFunc("*/30 * * * *", releaseCleanedRooms)
	if err != nil {
		log.Printf("Lỗi khởi tạo housekeeping scheduler: %v", err)
		return
	}

	housekeepingScheduler.Start()
	log.Println("Housekeeping scheduler started (every 30 minutes)")
}

// releaseCleanedRooms trả các phòng ở trạng thái cleaning quá 2 giờ về
// available. Chỉ đụng trạng thái cleaning — occupied do engine quản.
func releaseCleanedRooms() {
	cutoff := time.Now().Add(-2 * time.Hour)
	result := database.DB.Model(&model.Room{}).
		Where("status = ? AND updated_at < ?", model.RoomCleaning, cutoff).
		Update("status", model.RoomAvailable)

	if result.Error != nil {
		log.Printf("Lỗi cập nhật phòng cleaning: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã trả %d phòng về 'available'", result.RowsAffected)
	}
}

func StopHousekeepingScheduler() {
	if housekeepingScheduler != nil {
		housekeepingScheduler.Stop()
	}
}
