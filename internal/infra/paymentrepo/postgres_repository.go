package paymentrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/health-companion/internal/domain/billing"
)

// PostgresRepository persists payments in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new payment row.
func (r *PostgresRepository) Create(ctx context.Context, payment billing.Payment) (billing.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (id, user_id, reference, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, reference, amount, currency, status, created_at, updated_at
	`, uuid.NewString(), payment.UserID, payment.Reference, payment.Amount, payment.Currency, payment.Status)
	return scanPayment(row)
}

// GetByReference returns the payment for a reference.
func (r *PostgresRepository) GetByReference(ctx context.Context, reference string) (billing.Payment, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, reference, amount, currency, status, created_at, updated_at
		FROM payments
		WHERE reference = $1
		LIMIT 1
	`, reference)
	if err != nil {
		return billing.Payment{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return billing.Payment{}, false, rows.Err()
	}
	payment, err := scanPayment(rows)
	if err != nil {
		return billing.Payment{}, false, err
	}
	return payment, true, rows.Err()
}

// UpdateStatus transitions a payment to a new status.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, reference, status string) (billing.Payment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE payments
		SET status = $2, updated_at = now()
		WHERE reference = $1
		RETURNING id, user_id, reference, amount, currency, status, created_at, updated_at
	`, reference, status)
	return scanPayment(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (billing.Payment, error) {
	var payment billing.Payment
	var created, updated time.Time
	if err := row.Scan(&payment.ID, &payment.UserID, &payment.Reference, &payment.Amount,
		&payment.Currency, &payment.Status, &created, &updated); err != nil {
		return billing.Payment{}, err
	}
	payment.CreatedAt = created.UTC()
	payment.UpdatedAt = updated.UTC()
	return payment, nil
}

var _ billing.Repository = (*PostgresRepository)(nil)
