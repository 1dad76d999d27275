package booking

import (
	"hotel_manager/utils"
	"math"
	"time"
)

// Calculate tính số đêm và tổng tiền cho một kỳ lưu trú.
// nights = số ngày giữa hai mốc (làm tròn lên), tổng = giá đêm * số đêm,
// làm tròn half-up về 2 chữ số thập phân. Hàm thuần, không I/O —
// create và modify dùng chung.
func Calculate(nightlyRate float64, checkIn, checkOut time.Time) (int, float64, error) {
	in := utils.DateOnly(checkIn)
	out := utils.DateOnly(checkOut)

	nights := int(math.Ceil(out.Sub(in).Hours() / 24))
	if nights <= 0 {
		return 0, 0, ErrInvalidDateRange
	}

	total := RoundCurrency(nightlyRate * float64(nights))
	return nights, total, nil
}

// RoundCurrency làm tròn về đơn vị tiền tệ (2 chữ số, half-up)
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
