package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rintud72/medicine-shop-backend/controller"
)

func RegisterUserRoutes(app *fiber.App, uc *controller.UserController, authMiddleware fiber.Handler) {
	api := app.Group("/api")
	users := api.Group("/users")

	users.Post("/register", uc.Register)
	users.Post("/verify-otp", uc.VerifyOTP)
	users.Post("/login", uc.Login)
	users.Post("/forgot-password", uc.ForgotPassword)
	users.Post("/verify-reset-otp", uc.VerifyResetOTP)
	users.Post("/reset-password", uc.ResetPassword)

	users.Get("/profile", authMiddleware, uc.GetProfile)
	users.Put("/profile", authMiddleware, uc.UpdateProfile)
}
