package helper

import (
	"hotel_manager/booking"
	"hotel_manager/database"
	"hotel_manager/model"
	"log"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var noShowScheduler gocron.Scheduler

func hotelLocation() *time.Location {
	if tz := os.Getenv("HOTEL_TZ"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// SweepNoShows đánh dấu NO_SHOW các đặt phòng CONFIRMED đã qua ngày nhận
// phòng mà khách không đến. Đây là policy hook gọi vào engine — mỗi đặt
// phòng đi qua đúng transaction của orchestrator, không update hàng loạt.
func SweepNoShows() {
	log.Println("[CRON] SweepNoShows triggered")

	db := database.DB
	loc := hotelLocation()
	today := time.Now().In(loc).Format("2006-01-02")

	var stale []model.Reservation
	if err := db.
		Where("status = ? AND check_in_date < ?", model.ReservationConfirmed, today).
		Find(&stale).Error; err != nil {
		log.Printf("Lỗi quét đặt phòng no-show: %v", err)
		return
	}

	for _, res := range stale {
		if _, err := booking.MarkNoShow(db, res.PublicCode); err != nil {
			log.Printf("Lỗi đánh dấu no-show %s: %v", res.PublicCode, err)
		} else {
			log.Printf("Đặt phòng %s → NO_SHOW", res.PublicCode)
		}
	}
}

func StartNoShowScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(hotelLocation()),
	)
	if err != nil {
		log.Fatal(err)
	}

	noShowScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(2, 0, 0),
			),
		),
		gocron.NewTask(SweepNoShows),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("No-show scheduler started (02:00 daily)")
}

func StopNoShowScheduler() {
	if noShowScheduler != nil {
		_ = noShowScheduler.Shutdown()
	}
}
