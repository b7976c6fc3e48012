package auth

import (
	"time"

	"github.com/yanqian/health-companion/internal/domain/lifestyle"
)

// Config drives authentication behavior.
type Config struct {
	Secret          string
	TokenTTL        time.Duration
	RefreshTokenTTL time.Duration
}

// User represents a persisted account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsPremium    bool      `json:"isPremium"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest captures the registration payload. The wellness profile
// fields are collected up front so recommendations work from the first login.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	lifestyle.UpdateProfileRequest
}

// LoginRequest captures login details.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed token pair.
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

// UserView trims sensitive fields.
type UserView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsPremium bool      `json:"isPremium"`
	CreatedAt time.Time `json:"createdAt"`
}

// Claims are extracted from the JWT token.
type Claims struct {
	UserID    int64
	Email     string
	TokenType string
	TokenID   string
	ExpiresAt time.Time
}

// RefreshRequest encapsulates the refresh token payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
