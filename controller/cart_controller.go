package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rintud72/medicine-shop-backend/repository"
	"github.com/rintud72/medicine-shop-backend/service"
)

type CartController struct {
	Cart     *service.CartService
	Checkout *service.CheckoutService
}

func (cc *CartController) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	items, err := cc.Cart.List(c.Context(), userID)
	if err != nil {
		log.Printf("Error fetching cart: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error fetching cart items"})
	}

	return c.JSON(fiber.Map{"cart": fiber.Map{"items": items}})
}

func (cc *CartController) Add(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var in struct {
		MedicineID uint `json:"medicine_id"`
		Quantity   int  `json:"quantity"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}

	order, created, err := cc.Cart.AddToCart(c.Context(), userID, in.MedicineID, in.Quantity)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidQuantity):
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, repository.ErrMedicineNotFound):
		return c.Status(404).JSON(fiber.Map{"message": "medicine not found"})
	case errors.Is(err, repository.ErrInsufficientStock):
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})
	default:
		log.Printf("Error adding to cart: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error adding to cart"})
	}

	if created {
		return c.Status(201).JSON(fiber.Map{"message": "item added to cart", "order": order})
	}
	return c.JSON(fiber.Map{"message": "item quantity updated in cart", "order": order})
}

func (cc *CartController) Remove(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	medicineID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := cc.Cart.Remove(c.Context(), userID, uint(medicineID)); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "item not found in cart"})
		}
		log.Printf("Error removing from cart: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error removing from cart"})
	}

	return c.JSON(fiber.Map{"message": "item removed from cart"})
}

func (cc *CartController) CheckoutCOD(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	err := cc.Checkout.Checkout(c.Context(), userID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptyCart):
		return c.Status(400).JSON(fiber.Map{"message": "your cart is empty"})
	case errors.Is(err, repository.ErrMedicineNotFound):
		return c.Status(404).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, repository.ErrInsufficientStock):
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})
	default:
		log.Printf("Error during checkout: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error during checkout"})
	}

	return c.JSON(fiber.Map{"message": "checkout successful, order placed"})
}
