package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rintud72/medicine-shop-backend/controller"
)

func RegisterCartRoutes(app *fiber.App, cc *controller.CartController, authMiddleware fiber.Handler) {
	api := app.Group("/api")
	cart := api.Group("/cart")

	cart.Get("/", authMiddleware, cc.List)
	cart.Post("/add", authMiddleware, cc.Add)
	cart.Delete("/remove/:id", authMiddleware, cc.Remove)
	cart.Post("/checkout", authMiddleware, cc.CheckoutCOD)
}
