package billing

import "context"

// Repository persists payment records.
type Repository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	GetByReference(ctx context.Context, reference string) (Payment, bool, error)
	UpdateStatus(ctx context.Context, reference, status string) (Payment, error)
}
