package repository

import (
	"context"
	"errors"

	"github.com/rintud72/medicine-shop-backend/model"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrMedicineNotFound  = errors.New("medicine not found")
	ErrInsufficientStock = errors.New("not enough stock")
)

// OrderRepository is the persistence boundary for order lines (cart items
// and placed orders alike).
type OrderRepository interface {
	// PendingByOwner returns the user's cart, oldest line first.
	PendingByOwner(ctx context.Context, userID uint) ([]model.Order, error)
	// PendingLine returns the single Pending line for (user, medicine),
	// or ErrOrderNotFound.
	PendingLine(ctx context.Context, userID, medicineID uint) (*model.Order, error)
	// PendingByIntent returns Pending lines stamped with a gateway order id.
	PendingByIntent(ctx context.Context, userID uint, intentRef string) ([]model.Order, error)
	// HistoryByOwner returns the user's non-Pending lines, newest first.
	HistoryByOwner(ctx context.Context, userID uint) ([]model.Order, error)
	// AllOrders returns every order line, newest first.
	AllOrders(ctx context.Context) ([]model.Order, error)

	Create(ctx context.Context, order *model.Order) error
	Save(ctx context.Context, order *model.Order) error
	// DeletePending removes the Pending line for (user, medicine), or
	// ErrOrderNotFound if there is none.
	DeletePending(ctx context.Context, userID, medicineID uint) error
	// StampIntent sets the gateway order id on every Pending line of the
	// user and returns how many lines were stamped.
	StampIntent(ctx context.Context, userID uint, intentRef string) (int64, error)
	// FailPendingByIntent bulk-moves the user's Pending lines carrying the
	// given gateway order id to Failed.
	FailPendingByIntent(ctx context.Context, userID uint, intentRef string) error
}

// MedicineRepository is the catalog boundary used by the order flow.
type MedicineRepository interface {
	// FindByID returns the medicine or ErrMedicineNotFound.
	FindByID(ctx context.Context, id uint) (*model.Medicine, error)
	// DecrementStock atomically subtracts qty from the medicine's stock.
	// It fails with ErrInsufficientStock when stock < qty, so stock can
	// never go negative even under concurrent checkouts.
	DecrementStock(ctx context.Context, id uint, qty int) error
}
