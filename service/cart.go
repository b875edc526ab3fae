package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rintud72/medicine-shop-backend/model"
	"github.com/rintud72/medicine-shop-backend/repository"
)

// CartItem is a Pending order line with the medicine's display fields
// resolved for the client.
type CartItem struct {
	model.Order
	MedicineName  string  `json:"medicine_name"`
	MedicinePrice float64 `json:"medicine_price"`
	MedicineImage string  `json:"medicine_image"`
}

type CartService struct {
	Orders    repository.OrderRepository
	Medicines repository.MedicineRepository
}

func NewCartService(orders repository.OrderRepository, medicines repository.MedicineRepository) *CartService {
	return &CartService{Orders: orders, Medicines: medicines}
}

// List returns the user's cart with medicine names resolved. A line whose
// medicine was deleted from the catalog is still listed so the user can
// remove it.
func (s *CartService) List(ctx context.Context, userID uint) ([]CartItem, error) {
	orders, err := s.Orders.PendingByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]CartItem, 0, len(orders))
	for _, order := range orders {
		item := CartItem{Order: order}
		medicine, err := s.Medicines.FindByID(ctx, order.MedicineID)
		if err == nil {
			item.MedicineName = medicine.Name
			item.MedicinePrice = medicine.Price
			item.MedicineImage = medicine.Image
		} else if !errors.Is(err, repository.ErrMedicineNotFound) {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// AddToCart puts quantity units of a medicine into the user's cart. If a
// Pending line for the medicine already exists the quantities are merged and
// the stock check runs against the merged total. The price snapshot is taken
// at line creation and kept on merge. Returns the line and whether it was
// newly created.
func (s *CartService) AddToCart(ctx context.Context, userID, medicineID uint, quantity int) (*model.Order, bool, error) {
	if quantity <= 0 {
		return nil, false, ErrInvalidQuantity
	}

	medicine, err := s.Medicines.FindByID(ctx, medicineID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.Orders.PendingLine(ctx, userID, medicineID)
	if err != nil && !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, false, err
	}

	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if medicine.Stock < newQuantity {
		return nil, false, fmt.Errorf("%w for %s, only %d left", repository.ErrInsufficientStock, medicine.Name, medicine.Stock)
	}

	if existing != nil {
		existing.Quantity = newQuantity
		if err := s.Orders.Save(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	order := &model.Order{
		UserID:       userID,
		MedicineID:   medicineID,
		Quantity:     quantity,
		PriceAtOrder: medicine.Price,
		Status:       model.StatusPending,
		CreatedAt:    time.Now(),
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, false, err
	}
	return order, true, nil
}

// Remove deletes the user's Pending line for the medicine. Stock is never
// touched here, nothing was reserved for a cart line.
func (s *CartService) Remove(ctx context.Context, userID, medicineID uint) error {
	return s.Orders.DeletePending(ctx, userID, medicineID)
}
