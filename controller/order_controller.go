package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rintud72/medicine-shop-backend/kafka"
	"github.com/rintud72/medicine-shop-backend/model"
	"github.com/rintud72/medicine-shop-backend/repository"
)

type OrderController struct {
	Orders    repository.OrderRepository
	Medicines repository.MedicineRepository
	Producer  *kafka.Producer
}

type orderView struct {
	model.Order
	MedicineName  string `json:"medicine_name"`
	MedicineImage string `json:"medicine_image"`
}

// Create places a single order line directly, outside the cart flow. COD
// orders decrement stock immediately; any other method leaves the line
// Pending for the payment flow.
func (oc *OrderController) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var in struct {
		MedicineID    uint   `json:"medicine_id"`
		Quantity      int    `json:"quantity"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}
	if in.Quantity <= 0 {
		return c.Status(400).JSON(fiber.Map{"message": "quantity must be greater than zero"})
	}

	medicine, err := oc.Medicines.FindByID(c.Context(), in.MedicineID)
	if err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "medicine not found"})
		}
		log.Printf("Error placing order: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error placing order"})
	}
	if medicine.Stock < in.Quantity {
		return c.Status(400).JSON(fiber.Map{"message": "not enough stock"})
	}

	order := model.Order{
		UserID:       userID,
		MedicineID:   in.MedicineID,
		Quantity:     in.Quantity,
		PriceAtOrder: medicine.Price,
		Status:       model.StatusPending,
		CreatedAt:    time.Now(),
	}

	if in.PaymentMethod == model.PaymentMethodCOD {
		if err := oc.Medicines.DecrementStock(c.Context(), in.MedicineID, in.Quantity); err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) {
				return c.Status(400).JSON(fiber.Map{"message": "not enough stock"})
			}
			log.Printf("Error placing order: %v", err)
			return c.Status(500).JSON(fiber.Map{"message": "error placing order"})
		}
		order.Status = model.StatusCOD
		order.PaymentMethod = model.PaymentMethodCOD
	}

	if err := oc.Orders.Create(c.Context(), &order); err != nil {
		log.Printf("Error placing order: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error placing order"})
	}

	oc.Producer.PublishOrderPlacedEvent(map[string]interface{}{
		"event_type": "order.placed",
		"data": map[string]interface{}{
			"order_id":       order.ID,
			"user_id":        userID,
			"medicine_id":    order.MedicineID,
			"quantity":       order.Quantity,
			"payment_method": order.PaymentMethod,
			"placed_at":      time.Now().Format(time.RFC3339),
		},
	})

	return c.Status(201).JSON(fiber.Map{"message": "order placed successfully", "order": order})
}

// History returns the user's non-Pending lines, newest first.
func (oc *OrderController) History(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	orders, err := oc.Orders.HistoryByOwner(c.Context(), userID)
	if err != nil {
		log.Printf("Error fetching order history: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error fetching order history"})
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		view := orderView{Order: order}
		if medicine, err := oc.Medicines.FindByID(c.Context(), order.MedicineID); err == nil {
			view.MedicineName = medicine.Name
			view.MedicineImage = medicine.Image
		}
		views = append(views, view)
	}

	return c.JSON(fiber.Map{
		"message": "order history fetched successfully",
		"orders":  views,
	})
}

// ListAll is the admin view over every order line.
func (oc *OrderController) ListAll(c *fiber.Ctx) error {
	orders, err := oc.Orders.AllOrders(c.Context())
	if err != nil {
		log.Printf("Error fetching orders: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error fetching orders"})
	}

	return c.JSON(fiber.Map{"orders": orders})
}
