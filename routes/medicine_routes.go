package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rintud72/medicine-shop-backend/controller"
)

func RegisterMedicineRoutes(app *fiber.App, mc *controller.MedicineController, authMiddleware, adminOnly fiber.Handler) {
	api := app.Group("/api")
	medicines := api.Group("/medicines")

	medicines.Get("/", mc.List)
	medicines.Get("/search", mc.SearchIndex)
	medicines.Get("/:id", mc.Get)

	medicines.Post("/", authMiddleware, adminOnly, mc.Create)
	medicines.Put("/:id", authMiddleware, adminOnly, mc.Update)
	medicines.Delete("/:id", authMiddleware, adminOnly, mc.Delete)
}
