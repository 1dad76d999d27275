package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ReservationConfirmationData dữ liệu cho template email
type ReservationConfirmationData struct {
	ReservationCode string
	GuestName       string
	RoomNumber      string
	CheckInDate     string
	CheckOutDate    string
	Nights          int
	TotalAmount     float64
	DetailLink      string
	CancelLink      string
}

// SendReservationConfirmationEmail gửi email xác nhận đặt phòng (async).
// Best-effort: lỗi chỉ log, không bao giờ làm fail giao dịch đặt phòng.
func SendReservationConfirmationEmail(to string, data ReservationConfirmationData) {
	go func() {
		tmplPath := "templates/reservation_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Xác nhận đặt phòng #"+data.ReservationCode)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email: %v", err)
		}
	}()
}
