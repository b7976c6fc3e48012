package paymentrepo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/health-companion/internal/domain/billing"
)

// MemoryRepository provides an in-memory payment store for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	payments map[string]billing.Payment
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{payments: make(map[string]billing.Payment)}
}

// Create stores the payment record keyed by reference.
func (r *MemoryRepository) Create(_ context.Context, payment billing.Payment) (billing.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.payments[payment.Reference]; exists {
		return billing.Payment{}, errors.New("reference already exists")
	}
	payment.ID = uuid.NewString()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	payment.UpdatedAt = payment.CreatedAt
	r.payments[payment.Reference] = payment
	return payment, nil
}

// GetByReference returns the payment for a reference.
func (r *MemoryRepository) GetByReference(_ context.Context, reference string) (billing.Payment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payment, ok := r.payments[reference]
	return payment, ok, nil
}

// UpdateStatus transitions a payment to a new status.
func (r *MemoryRepository) UpdateStatus(_ context.Context, reference, status string) (billing.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[reference]
	if !ok {
		return billing.Payment{}, errors.New("payment not found")
	}
	payment.Status = status
	payment.UpdatedAt = time.Now().UTC()
	r.payments[reference] = payment
	return payment, nil
}

var _ billing.Repository = (*MemoryRepository)(nil)
