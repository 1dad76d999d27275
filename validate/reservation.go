package validate

import (
	"errors"
	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateReservation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateReservationInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
		}

		if input.CheckInDate.IsZero() || input.CheckOutDate.IsZero() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Thiếu ngày nhận/trả phòng", errors.New("checkInDate and checkOutDate are required"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func ModifyReservation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.ModifyReservationInput](c, "input")
	}
}

func CancelReservation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.CancelReservationInput](c, "input")
	}
}

func UpdatePaymentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.UpdatePaymentStatusInput](c, "input")
	}
}
