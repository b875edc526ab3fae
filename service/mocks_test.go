package service

import (
	"context"
	"sync"

	"github.com/rintud72/medicine-shop-backend/model"
	"github.com/rintud72/medicine-shop-backend/repository"
)

// memOrders implements repository.OrderRepository in memory, preserving
// insertion order so "oldest first" matches creation order.
type memOrders struct {
	mu   sync.Mutex
	seq  uint
	rows []*model.Order
	err  error
}

func (m *memOrders) PendingByOwner(_ context.Context, userID uint) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Order
	for _, row := range m.rows {
		if row.UserID == userID && row.Status == model.StatusPending {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memOrders) PendingLine(_ context.Context, userID, medicineID uint) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, row := range m.rows {
		if row.UserID == userID && row.MedicineID == medicineID && row.Status == model.StatusPending {
			cp := *row
			return &cp, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *memOrders) PendingByIntent(_ context.Context, userID uint, intentRef string) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Order
	for _, row := range m.rows {
		if row.UserID == userID && row.PaymentID == intentRef && row.Status == model.StatusPending {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memOrders) HistoryByOwner(_ context.Context, userID uint) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for i := len(m.rows) - 1; i >= 0; i-- {
		row := m.rows[i]
		if row.UserID == userID && row.Status != model.StatusPending {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (m *memOrders) AllOrders(_ context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for i := len(m.rows) - 1; i >= 0; i-- {
		out = append(out, *m.rows[i])
	}
	return out, nil
}

func (m *memOrders) Create(_ context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	order.ID = m.seq
	cp := *order
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memOrders) Save(_ context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, row := range m.rows {
		if row.ID == order.ID {
			cp := *order
			m.rows[i] = &cp
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (m *memOrders) DeletePending(_ context.Context, userID, medicineID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, row := range m.rows {
		if row.UserID == userID && row.MedicineID == medicineID && row.Status == model.StatusPending {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (m *memOrders) StampIntent(_ context.Context, userID uint, intentRef string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, row := range m.rows {
		if row.UserID == userID && row.Status == model.StatusPending {
			row.PaymentID = intentRef
			n++
		}
	}
	return n, nil
}

func (m *memOrders) FailPendingByIntent(_ context.Context, userID uint, intentRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, row := range m.rows {
		if row.UserID == userID && row.PaymentID == intentRef && row.Status == model.StatusPending {
			row.Status = model.StatusFailed
		}
	}
	return nil
}

func (m *memOrders) get(id uint) *model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			cp := *row
			return &cp
		}
	}
	return nil
}

func (m *memOrders) pendingCount(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.rows {
		if row.UserID == userID && row.Status == model.StatusPending {
			n++
		}
	}
	return n
}

// memMedicines implements repository.MedicineRepository with the same
// conditional-decrement contract as the GORM implementation.
type memMedicines struct {
	mu   sync.Mutex
	rows map[uint]*model.Medicine
	err  error
}

func newMemMedicines(medicines ...model.Medicine) *memMedicines {
	m := &memMedicines{rows: map[uint]*model.Medicine{}}
	for i := range medicines {
		cp := medicines[i]
		m.rows[cp.ID] = &cp
	}
	return m
}

func (m *memMedicines) FindByID(_ context.Context, id uint) (*model.Medicine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrMedicineNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *memMedicines) DecrementStock(_ context.Context, id uint, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	row, ok := m.rows[id]
	if !ok {
		return repository.ErrMedicineNotFound
	}
	if row.Stock < qty {
		return repository.ErrInsufficientStock
	}
	row.Stock -= qty
	return nil
}

func (m *memMedicines) stock(id uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok {
		return row.Stock
	}
	return -1
}

func (m *memMedicines) setPrice(id uint, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok {
		row.Price = price
	}
}

func (m *memMedicines) remove(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
}
