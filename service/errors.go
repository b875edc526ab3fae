package service

import "errors"

var (
	ErrEmptyCart         = errors.New("your cart is empty")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrGatewayDisabled   = errors.New("payment service not configured, please try cash on delivery")
	ErrSignatureMismatch = errors.New("invalid payment signature")
	ErrNoPendingPayment  = errors.New("no pending orders found for this payment")
)
