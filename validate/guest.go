package validate

import (
	"hotel_manager/model"

	"github.com/gofiber/fiber/v2"
)

func RegisterGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.RegisterGuestInput](c, "input")
	}
}

func EditGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.EditGuestInput](c, "input")
	}
}

func ChangePasswordGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.GuestChangePassword](c, "input")
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.ForgotPasswordRequest](c, "EmailForgotPassword")
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.ResetPasswordRequest](c, "ResetPassword")
	}
}

func CreateAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.CreateAccountInput](c, "input")
	}
}

func AdminChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return parseAndValidate[model.AdminChangePassword](c, "inputAdminChangePassword")
	}
}
