package weather

import (
	"context"
	"log/slog"
	"strings"
)

// Provider fetches live weather for a location.
type Provider interface {
	Fetch(ctx context.Context, location string) (Snapshot, error)
}

// Service resolves current weather conditions. Current never fails: when the
// provider is unset or errors, the fixed mock snapshot is returned instead.
type Service interface {
	Current(ctx context.Context, location string) Snapshot
}

type service struct {
	provider        Provider
	defaultLocation string
	logger          *slog.Logger
}

func NewService(provider Provider, defaultLocation string, logger *slog.Logger) Service {
	return &service{
		provider:        provider,
		defaultLocation: defaultLocation,
		logger:          logger.With("component", "weather.service"),
	}
}

func (s *service) Current(ctx context.Context, location string) Snapshot {
	location = strings.TrimSpace(location)
	if location == "" {
		location = s.defaultLocation
	}
	if s.provider == nil {
		return MockSnapshot(location)
	}
	snapshot, err := s.provider.Fetch(ctx, location)
	if err != nil {
		s.logger.Warn("weather provider unavailable, serving mock snapshot", "location", location, "error", err)
		return MockSnapshot(location)
	}
	return snapshot
}
