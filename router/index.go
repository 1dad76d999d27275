package router

import (
	"hotel_manager/handler"
	"hotel_manager/middleware"
	"hotel_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	account := v1.Group("/account", logger.New())
	account.Get("/", middleware.Protected(), handler.GetAccounts)
	account.Get("/me", middleware.Protected(), handler.Me)
	account.Post("/", middleware.Protected(), validate.CreateAccount(), handler.CreateAccount)
	account.Post("/change-password", middleware.Protected(), validate.AdminChangePassword(), handler.AdminChangePassword)
	account.Patch("/:accountId/active", middleware.Protected(), validate.GetById("accountId"), handler.ToggleActiveAccount)

	category := v1.Group("/category", logger.New())
	category.Get("/", middleware.Protected(), handler.GetRoomCategories)
	category.Get("/:categoryId", middleware.Protected(), validate.GetById("categoryId"), handler.GetRoomCategoryById)
	category.Post("/", middleware.Protected(), validate.CreateRoomCategory(), handler.CreateRoomCategory)
	category.Put("/:categoryId", middleware.Protected(), validate.GetById("categoryId"), validate.EditRoomCategory(), handler.EditRoomCategory)
	category.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteRoomCategory)

	room := v1.Group("/room", logger.New())
	room.Get("/", middleware.Protected(), handler.GetRooms)
	room.Get("/available", middleware.Protected(), validate.SearchAvailability(), handler.GetAvailableRooms)
	room.Get("/:roomId", middleware.Protected(), validate.GetById("roomId"), handler.GetRoomById)
	room.Post("/", middleware.Protected(), validate.CreateRoom(), handler.CreateRoom)
	room.Put("/:roomId", middleware.Protected(), validate.GetById("roomId"), validate.EditRoom(), handler.EditRoom)
	room.Patch("/:roomId/status", middleware.Protected(), validate.GetById("roomId"), validate.SetRoomStatus(), handler.SetRoomStatus)
	room.Patch("/:roomId/disable", middleware.Protected(), validate.GetById("roomId"), handler.DisableRoom)
	room.Patch("/:roomId/enable", middleware.Protected(), validate.GetById("roomId"), handler.EnableRoom)

	reservation := v1.Group("/reservation", logger.New())
	reservation.Get("/", middleware.Protected(), handler.GetReservations)
	reservation.Post("/", middleware.Protected(), validate.CreateReservation(), handler.CreateReservationForStaff)
	reservation.Get("/:code", middleware.Protected(), handler.GetReservationDetail)
	reservation.Put("/:code", middleware.Protected(), validate.ModifyReservation(), handler.ModifyReservation)
	reservation.Post("/:code/cancel", middleware.Protected(), validate.CancelReservation(), handler.CancelReservation)
	reservation.Post("/:code/check-in", middleware.Protected(), handler.CheckInReservation)
	reservation.Post("/:code/check-out", middleware.Protected(), handler.CheckOutReservation)
	reservation.Patch("/:code/payment", middleware.Protected(), validate.UpdatePaymentStatus(), handler.UpdatePaymentStatus)

	// Public / khách tự đặt
	phong := v1.Group("/phong")
	phong.Get("/trong", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.SearchAvailability(), handler.GetAvailableRooms)
	phong.Get("/hang-phong", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetRoomCategories)

	datphong := v1.Group("/dat-phong")
	datphong.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyReservations)
	datphong.Post("/", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CreateReservation(), handler.CreateReservation)
	datphong.Get("/:code", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetReservationDetail)
	datphong.Put("/:code", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.ModifyReservation(), handler.ModifyReservation)
	datphong.Post("/:code/huy", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CancelReservation(), handler.CancelReservation)

	khachhang := v1.Group("/khach-hang")
	khachhang.Post("/login", handler.GuestLogin)
	khachhang.Get("/me", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetCurrentGuest)
	khachhang.Post("/register", validate.RegisterGuest(), handler.RegisterGuest)
	khachhang.Post("/change-password", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.ChangePasswordGuest(), handler.ChangePasswordGuest)
	khachhang.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	khachhang.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	// Sơ đồ phòng realtime cho dashboard lễ tân
	v1.Get("/so-do-phong", websocket.New(handler.RoomStatusWebsocket))
}
