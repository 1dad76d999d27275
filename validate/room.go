package validate

import (
	"errors"
	"hotel_manager/model"
	"hotel_manager/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

func CreateRoom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.CreateRoomInput](c, "input")
	}
}

func EditRoom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.EditRoomInput](c, "input")
	}
}

func SetRoomStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.SetRoomStatusInput](c, "input")
	}
}

func CreateRoomCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.CreateRoomCategoryInput](c, "input")
	}
}

func EditRoomCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.EditRoomCategoryInput](c, "input")
	}
}

// SearchAvailability validate query ?checkIn=YYYY-MM-DD&checkOut=YYYY-MM-DD
func SearchAvailability() fiber.Handler {
	return func(c *fiber.Ctx) error {
		checkInStr := c.Query("checkIn")
		checkOutStr := c.Query("checkOut")
		if checkInStr == "" || checkOutStr == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu ngày nhận/trả phòng", errors.New("checkIn and checkOut are required"))
		}

		checkIn, err := time.Parse("2006-01-02", checkInStr)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ngày nhận phòng không hợp lệ", err)
		}
		checkOut, err := time.Parse("2006-01-02", checkOutStr)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ngày trả phòng không hợp lệ", err)
		}
		if !checkIn.Before(checkOut) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ngày trả phòng phải sau ngày nhận phòng", errors.New("invalid date range"))
		}

		c.Locals("checkIn", utils.CustomDate{Time: checkIn})
		c.Locals("checkOut", utils.CustomDate{Time: checkOut})
		return c.Next()
	}
}
