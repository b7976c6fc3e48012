package authstore

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/health-companion/internal/domain/auth"
)

// ValkeyStore tracks revoked token IDs in a Valkey-compatible database so
// logout survives restarts and is shared across instances.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "auth"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Revoke stores the token ID with a TTL matching its remaining lifetime.
func (s *ValkeyStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	cmd := s.client.B().Set().Key(s.key(tokenID)).Value("1").Ex(ttl).Build()
	return s.client.Do(ctx, cmd).Error()
}

// IsRevoked reports whether the token ID is present in the denylist.
func (s *ValkeyStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	cmd := s.client.B().Get().Key(s.key(tokenID)).Build()
	if _, err := s.client.Do(ctx, cmd).ToString(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *ValkeyStore) key(tokenID string) string {
	return fmt.Sprintf("%s:revoked:%s", s.prefix, tokenID)
}

var _ auth.TokenStore = (*ValkeyStore)(nil)
