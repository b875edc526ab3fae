package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rintud72/medicine-shop-backend/controller"
)

func RegisterPaymentRoutes(app *fiber.App, pc *controller.PaymentController, authMiddleware fiber.Handler) {
	api := app.Group("/api")
	payments := api.Group("/payments")

	payments.Post("/create-order", authMiddleware, pc.CreateOrder)
	payments.Post("/verify", authMiddleware, pc.Verify)
}
