package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rintud72/medicine-shop-backend/kafka"
	"github.com/rintud72/medicine-shop-backend/model"
	"github.com/rintud72/medicine-shop-backend/repository"
)

type CheckoutService struct {
	Orders    repository.OrderRepository
	Medicines repository.MedicineRepository
	Producer  *kafka.Producer
}

func NewCheckoutService(orders repository.OrderRepository, medicines repository.MedicineRepository, producer *kafka.Producer) *CheckoutService {
	return &CheckoutService{Orders: orders, Medicines: medicines, Producer: producer}
}

// Checkout converts every Pending line of the user into a COD order,
// decrementing catalog stock line by line. Lines are handled sequentially
// and independently: if a line fails, the lines before it stay committed
// and the error names the medicine that stopped the run.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) error {
	cartItems, err := s.Orders.PendingByOwner(ctx, userID)
	if err != nil {
		return err
	}
	if len(cartItems) == 0 {
		return ErrEmptyCart
	}

	for i := range cartItems {
		item := &cartItems[i]

		medicine, err := s.Medicines.FindByID(ctx, item.MedicineID)
		if err != nil {
			return fmt.Errorf("medicine %d: %w", item.MedicineID, err)
		}

		if err := s.Medicines.DecrementStock(ctx, item.MedicineID, item.Quantity); err != nil {
			return fmt.Errorf("%s: %w", medicine.Name, err)
		}

		if err := item.Transition(model.StatusCOD); err != nil {
			return err
		}
		item.PaymentMethod = model.PaymentMethodCOD
		if err := s.Orders.Save(ctx, item); err != nil {
			return err
		}

		s.Producer.PublishOrderPlacedEvent(map[string]interface{}{
			"event_type": "order.placed",
			"data": map[string]interface{}{
				"order_id":       item.ID,
				"user_id":        userID,
				"medicine_id":    item.MedicineID,
				"quantity":       item.Quantity,
				"payment_method": model.PaymentMethodCOD,
				"placed_at":      time.Now().Format(time.RFC3339),
			},
		})
	}
	return nil
}
