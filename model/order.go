package model

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle of a single order line. A row with status
// Pending is a cart item; any other status makes it a placed order.
type OrderStatus string

const (
	StatusPending OrderStatus = "Pending"
	StatusCOD     OrderStatus = "COD"
	StatusPaid    OrderStatus = "Paid"
	StatusFailed  OrderStatus = "Failed"
)

const (
	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "ONLINE"
)

// Terminal reports whether the status can never change again.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusCOD, StatusPaid, StatusFailed:
		return true
	}
	return false
}

// Order is one (user, medicine) line. While Pending its quantity may still
// be merged; once it leaves Pending it is frozen order history.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"index" json:"user_id"`
	MedicineID    uint        `gorm:"index" json:"medicine_id"`
	Quantity      int         `json:"quantity"`
	PriceAtOrder  float64     `json:"price_at_order"`
	Status        OrderStatus `gorm:"type:varchar(16);default:Pending" json:"status"`
	PaymentID     string      `json:"payment_id,omitempty"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Transition moves the order out of Pending. Terminal statuses never change
// and nothing ever becomes Pending again.
func (o *Order) Transition(to OrderStatus) error {
	if to == StatusPending {
		return fmt.Errorf("order %d: cannot transition back to %s", o.ID, StatusPending)
	}
	if o.Status != StatusPending {
		return fmt.Errorf("order %d: invalid transition %s -> %s", o.ID, o.Status, to)
	}
	o.Status = to
	return nil
}
