package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rintud72/medicine-shop-backend/repository"
	"github.com/rintud72/medicine-shop-backend/service"
)

type PaymentController struct {
	Payments *service.PaymentService
}

func (pc *PaymentController) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	userName, _ := c.Locals("user_name").(string)
	userEmail, _ := c.Locals("user_email").(string)

	intent, err := pc.Payments.CreateIntent(c.Context(), userID, userName, userEmail)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrGatewayDisabled):
		return c.Status(503).JSON(fiber.Map{"success": false, "message": "payment service not configured, please try cash on delivery"})
	case errors.Is(err, service.ErrEmptyCart):
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "your cart is empty"})
	case errors.Is(err, repository.ErrMedicineNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
	default:
		log.Printf("Error creating payment order: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "error creating payment order"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"order_id":   intent.OrderID,
		"amount":     intent.Amount,
		"currency":   intent.Currency,
		"key":        intent.Key,
		"user_name":  intent.UserName,
		"user_email": intent.UserEmail,
	})
}

func (pc *PaymentController) Verify(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var in struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "invalid payload"})
	}
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "missing payment fields"})
	}

	err := pc.Payments.Verify(c.Context(), userID, in.OrderID, in.PaymentID, in.Signature)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrGatewayDisabled):
		return c.Status(503).JSON(fiber.Map{"success": false, "message": "payment service not configured, please try cash on delivery"})
	case errors.Is(err, service.ErrSignatureMismatch):
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "invalid payment signature"})
	case errors.Is(err, service.ErrNoPendingPayment):
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "no pending orders found for this payment"})
	case errors.Is(err, repository.ErrInsufficientStock), errors.Is(err, repository.ErrMedicineNotFound):
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "stock issue for " + err.Error() + ", order marked as failed"})
	default:
		log.Printf("Error verifying payment: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "error verifying payment"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "payment verified successfully"})
}
