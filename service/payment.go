package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/rintud72/medicine-shop-backend/kafka"
	"github.com/rintud72/medicine-shop-backend/model"
	"github.com/rintud72/medicine-shop-backend/payment"
	"github.com/rintud72/medicine-shop-backend/repository"
)

// Intent describes a gateway-side payment order covering the whole cart.
type Intent struct {
	OrderID   string  `json:"order_id"`
	Amount    int64   `json:"amount"`
	Currency  string  `json:"currency"`
	Key       string  `json:"key"`
	UserName  string  `json:"user_name"`
	UserEmail string  `json:"user_email"`
	Total     float64 `json:"total"`
}

type PaymentService struct {
	Orders    repository.OrderRepository
	Medicines repository.MedicineRepository
	Gateway   payment.Gateway
	KeyID     string
	KeySecret string
	Producer  *kafka.Producer
}

func NewPaymentService(orders repository.OrderRepository, medicines repository.MedicineRepository, gw payment.Gateway, keyID, keySecret string, producer *kafka.Producer) *PaymentService {
	return &PaymentService{
		Orders:    orders,
		Medicines: medicines,
		Gateway:   gw,
		KeyID:     keyID,
		KeySecret: keySecret,
		Producer:  producer,
	}
}

// Enabled reports whether gateway credentials were configured.
func (s *PaymentService) Enabled() bool {
	return s.Gateway != nil
}

// CreateIntent sizes a gateway order to the user's Pending cart and stamps
// every current Pending line with the returned order id. The total is taken
// from the price snapshots, not the live catalog, so catalog price edits
// cannot change an in-flight cart's amount. Lines added to the cart after
// this call carry no stamp and are excluded from verification.
func (s *PaymentService) CreateIntent(ctx context.Context, userID uint, userName, userEmail string) (*Intent, error) {
	if !s.Enabled() {
		return nil, ErrGatewayDisabled
	}

	cartItems, err := s.Orders.PendingByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	for _, item := range cartItems {
		if _, err := s.Medicines.FindByID(ctx, item.MedicineID); err != nil {
			if errors.Is(err, repository.ErrMedicineNotFound) {
				return nil, fmt.Errorf("medicine %d no longer in catalog, please remove it from the cart: %w", item.MedicineID, err)
			}
			return nil, err
		}
		total += item.PriceAtOrder * float64(item.Quantity)
	}

	// Gateway wants minor units (paise).
	amount := int64(math.Round(total * 100))
	receipt := "receipt_order_" + uuid.NewString()

	order, err := s.Gateway.CreateOrder(ctx, amount, "INR", receipt)
	if err != nil {
		return nil, err
	}

	if _, err := s.Orders.StampIntent(ctx, userID, order.ID); err != nil {
		return nil, err
	}

	return &Intent{
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		Key:       s.KeyID,
		UserName:  userName,
		UserEmail: userEmail,
		Total:     total,
	}, nil
}

// Verify settles a gateway callback. A bad signature fails every Pending
// line stamped with the intent. A good signature finalizes the stamped
// lines one by one: each line re-checks the catalog, decrements stock and
// moves to Paid; a stock or catalog failure marks that line Failed and
// aborts the rest, lines already finalized stay Paid.
func (s *PaymentService) Verify(ctx context.Context, userID uint, intentRef, paymentRef, signature string) error {
	if !s.Enabled() {
		return ErrGatewayDisabled
	}

	if !payment.VerifySignature(intentRef, paymentRef, signature, s.KeySecret) {
		if err := s.Orders.FailPendingByIntent(ctx, userID, intentRef); err != nil {
			return err
		}
		s.Producer.PublishPaymentFailedEvent(map[string]interface{}{
			"event_type": "payment.failed",
			"data": map[string]interface{}{
				"user_id":  userID,
				"order_id": intentRef,
				"reason":   "signature mismatch",
			},
		})
		return ErrSignatureMismatch
	}

	paidItems, err := s.Orders.PendingByIntent(ctx, userID, intentRef)
	if err != nil {
		return err
	}
	if len(paidItems) == 0 {
		return ErrNoPendingPayment
	}

	var orderIDs []uint
	for i := range paidItems {
		item := &paidItems[i]

		medicine, err := s.Medicines.FindByID(ctx, item.MedicineID)
		if err != nil {
			if errors.Is(err, repository.ErrMedicineNotFound) {
				return s.failLine(ctx, item, fmt.Errorf("medicine %d: %w", item.MedicineID, err))
			}
			return err
		}

		if err := s.Medicines.DecrementStock(ctx, item.MedicineID, item.Quantity); err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) || errors.Is(err, repository.ErrMedicineNotFound) {
				return s.failLine(ctx, item, fmt.Errorf("%s: %w", medicine.Name, err))
			}
			return err
		}

		if err := item.Transition(model.StatusPaid); err != nil {
			return err
		}
		item.PaymentMethod = model.PaymentMethodOnline
		if err := s.Orders.Save(ctx, item); err != nil {
			return err
		}
		orderIDs = append(orderIDs, item.ID)
	}

	s.Producer.PublishPaymentVerifiedEvent(map[string]interface{}{
		"event_type": "payment.verified",
		"data": map[string]interface{}{
			"user_id":     userID,
			"order_id":    intentRef,
			"payment_id":  paymentRef,
			"orders":      orderIDs,
			"verified_at": time.Now().Format(time.RFC3339),
		},
	})
	return nil
}

// failLine marks one line Failed and surfaces the cause. Lines after it are
// left Pending, lines before it are already Paid; the caller sees which
// medicine stopped the run.
func (s *PaymentService) failLine(ctx context.Context, item *model.Order, cause error) error {
	if err := item.Transition(model.StatusFailed); err != nil {
		return err
	}
	if err := s.Orders.Save(ctx, item); err != nil {
		return err
	}
	s.Producer.PublishPaymentFailedEvent(map[string]interface{}{
		"event_type": "payment.failed",
		"data": map[string]interface{}{
			"user_id":  item.UserID,
			"order_id": item.PaymentID,
			"reason":   cause.Error(),
		},
	})
	return cause
}
