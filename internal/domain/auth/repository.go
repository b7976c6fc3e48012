package auth

import (
	"context"
	"time"
)

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	SetPremium(ctx context.Context, id int64, premium bool) error
}

// TokenStore tracks revoked token IDs until their natural expiry.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
