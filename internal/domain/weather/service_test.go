package weather

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	snapshot Snapshot
	err      error
	gotLoc   string
}

func (s *stubProvider) Fetch(_ context.Context, location string) (Snapshot, error) {
	s.gotLoc = location
	return s.snapshot, s.err
}

func TestCurrentReturnsProviderSnapshot(t *testing.T) {
	provider := &stubProvider{snapshot: Snapshot{Location: "Abuja", Country: "NG"}}
	svc := NewService(provider, "Lagos", slog.Default())

	got := svc.Current(context.Background(), "Abuja")

	require.Equal(t, "Abuja", provider.gotLoc)
	require.Equal(t, "Abuja", got.Location)
	require.False(t, got.Mock)
}

func TestCurrentFallsBackToDefaultLocation(t *testing.T) {
	provider := &stubProvider{snapshot: Snapshot{Location: "Lagos"}}
	svc := NewService(provider, "Lagos", slog.Default())

	svc.Current(context.Background(), "   ")

	require.Equal(t, "Lagos", provider.gotLoc)
}

func TestCurrentServesMockOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	svc := NewService(provider, "Lagos", slog.Default())

	got := svc.Current(context.Background(), "Ibadan")

	require.True(t, got.Mock)
	require.Equal(t, "Ibadan", got.Location)
	require.Equal(t, 28.0, got.Current.Temp)
	require.Equal(t, LevelHigh, got.Risks.UVRisk)
}

func TestCurrentServesMockWithoutProvider(t *testing.T) {
	svc := NewService(nil, "Lagos", slog.Default())

	got := svc.Current(context.Background(), "")

	require.True(t, got.Mock)
	require.Equal(t, "Lagos", got.Location)
}
