package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rintud72/medicine-shop-backend/controller"
)

func RegisterOrderRoutes(app *fiber.App, oc *controller.OrderController, authMiddleware, adminOnly fiber.Handler) {
	api := app.Group("/api")

	orders := api.Group("/orders")
	orders.Post("/", authMiddleware, oc.Create)
	orders.Get("/my-history", authMiddleware, oc.History)

	admin := api.Group("/admin")
	admin.Get("/orders", authMiddleware, adminOnly, oc.ListAll)
}
