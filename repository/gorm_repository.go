package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rintud72/medicine-shop-backend/model"
)

type GormOrderRepository struct {
	DB *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{DB: db}
}

func (r *GormOrderRepository) PendingByOwner(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StatusPending).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return orders, nil
}

func (r *GormOrderRepository) PendingLine(ctx context.Context, userID, medicineID uint) (*model.Order, error) {
	var order model.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND medicine_id = ? AND status = ?", userID, medicineID, model.StatusPending).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart item: %w", err)
	}
	return &order, nil
}

func (r *GormOrderRepository) PendingByIntent(ctx context.Context, userID uint, intentRef string) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND payment_id = ? AND status = ?", userID, intentRef, model.StatusPending).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending payment orders: %w", err)
	}
	return orders, nil
}

func (r *GormOrderRepository) HistoryByOwner(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, model.StatusPending).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order history: %w", err)
	}
	return orders, nil
}

func (r *GormOrderRepository) AllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.WithContext(ctx).Order("created_at desc").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (r *GormOrderRepository) Create(ctx context.Context, order *model.Order) error {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *GormOrderRepository) Save(ctx context.Context, order *model.Order) error {
	if err := r.DB.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *GormOrderRepository) DeletePending(ctx context.Context, userID, medicineID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND medicine_id = ? AND status = ?", userID, medicineID, model.StatusPending).
		Delete(&model.Order{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *GormOrderRepository) StampIntent(ctx context.Context, userID uint, intentRef string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ? AND status = ?", userID, model.StatusPending).
		Update("payment_id", intentRef)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to stamp payment id: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *GormOrderRepository) FailPendingByIntent(ctx context.Context, userID uint, intentRef string) error {
	err := r.DB.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ? AND payment_id = ? AND status = ?", userID, intentRef, model.StatusPending).
		Update("status", model.StatusFailed).Error
	if err != nil {
		return fmt.Errorf("failed to mark orders failed: %w", err)
	}
	return nil
}

type GormMedicineRepository struct {
	DB *gorm.DB
}

func NewGormMedicineRepository(db *gorm.DB) *GormMedicineRepository {
	return &GormMedicineRepository{DB: db}
}

func (r *GormMedicineRepository) FindByID(ctx context.Context, id uint) (*model.Medicine, error) {
	var medicine model.Medicine
	err := r.DB.WithContext(ctx).First(&medicine, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMedicineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medicine: %w", err)
	}
	return &medicine, nil
}

// DecrementStock runs a single guarded UPDATE so two concurrent checkouts
// cannot both take the last units.
func (r *GormMedicineRepository) DecrementStock(ctx context.Context, id uint, qty int) error {
	res := r.DB.WithContext(ctx).Model(&model.Medicine{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// No qualifying row: either the medicine is gone or stock ran out.
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}
