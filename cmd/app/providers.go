package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/health-companion/internal/domain/advisor"
	"github.com/yanqian/health-companion/internal/domain/auth"
	"github.com/yanqian/health-companion/internal/domain/billing"
	"github.com/yanqian/health-companion/internal/domain/lifestyle"
	"github.com/yanqian/health-companion/internal/domain/weather"
	"github.com/yanqian/health-companion/internal/infra/authstore"
	"github.com/yanqian/health-companion/internal/infra/billing/paystack"
	"github.com/yanqian/health-companion/internal/infra/config"
	"github.com/yanqian/health-companion/internal/infra/lifestylerepo"
	"github.com/yanqian/health-companion/internal/infra/llm/chatgpt"
	"github.com/yanqian/health-companion/internal/infra/paymentrepo"
	"github.com/yanqian/health-companion/internal/infra/userrepo"
	"github.com/yanqian/health-companion/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/health-companion/internal/interface/http"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		Model:              cfg.LLM.Model,
		Temperature:        cfg.LLM.Temperature,
		TipMaxTokens:       cfg.LLM.TipMaxTokens,
		ChatMaxTokens:      cfg.LLM.ChatMaxTokens,
		ContextTokenBudget: cfg.LLM.ContextTokenBudget,
	}
}

func provideBillingConfig(cfg *config.Config) billing.Config {
	return billing.Config{
		PublicKey:         cfg.Billing.PublicKey,
		CallbackBaseURL:   cfg.Billing.CallbackBaseURL,
		DefaultAmountKobo: cfg.Billing.PremiumAmountKobo,
		Currency:          cfg.Billing.Currency,
	}
}

// provideAdvisorChatClient returns nil when no API key is configured, which
// keeps the advisor on the rule-based fallback path.
func provideAdvisorChatClient(cfg *config.Config, logger *slog.Logger) advisor.ChatClient {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Info("llm api key not set, advisor runs in rule-based mode")
		return nil
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
	if err != nil {
		logger.Error("failed to create llm client, advisor runs in rule-based mode", "error", err)
		return nil
	}
	return client
}

// provideWeatherProvider returns nil when no API key is configured, which
// makes every lookup resolve to the mock snapshot.
func provideWeatherProvider(cfg *config.Config, logger *slog.Logger) weather.Provider {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Info("weather api key not set, serving mock snapshots")
		return nil
	}
	client, err := openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL)
	if err != nil {
		logger.Error("failed to create weather client, serving mock snapshots", "error", err)
		return nil
	}
	return client
}

// provideBillingGateway returns nil when no secret key is configured, which
// enables mock checkout and verification end to end.
func provideBillingGateway(cfg *config.Config, logger *slog.Logger) billing.Gateway {
	if strings.TrimSpace(cfg.Billing.SecretKey) == "" {
		logger.Info("billing secret key not set, payments run in mock mode")
		return nil
	}
	client, err := paystack.NewClient(cfg.Billing.SecretKey, cfg.Billing.BaseURL)
	if err != nil {
		logger.Error("failed to create billing client, payments run in mock mode", "error", err)
		return nil
	}
	return client
}

func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Storage.PostgresDSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Storage.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Storage.MaxConns
	}
	if cfg.Storage.MinConns > 0 {
		poolConfig.MinConns = cfg.Storage.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideLifestyleRepository(pool *pgxpool.Pool) lifestyle.Repository {
	if pool == nil {
		return lifestylerepo.NewMemoryRepository()
	}
	return lifestylerepo.NewPostgresRepository(pool)
}

func providePaymentRepository(pool *pgxpool.Pool) billing.Repository {
	if pool == nil {
		return paymentrepo.NewMemoryRepository()
	}
	return paymentrepo.NewPostgresRepository(pool)
}

func provideTokenStore(cfg *config.Config, logger *slog.Logger) auth.TokenStore {
	if cfg.Auth.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory token store", "error", err)
			return authstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory token store", "error", err)
			return authstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory token store", "error", err)
		} else {
			logger.Info("valkey token store enabled", "addr", cfg.Auth.Valkey.Addr)
			return authstore.NewValkeyStore(client, "auth")
		}
	}
	return authstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Auth.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Auth.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Auth.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideWeatherService(cfg *config.Config, provider weather.Provider, logger *slog.Logger) weather.Service {
	return weather.NewService(provider, cfg.Weather.DefaultLocation, logger)
}

func provideProfileWriter(svc lifestyle.Service) auth.ProfileWriter {
	return svc
}

func provideHistorySource(repo lifestyle.Repository) advisor.HistorySource {
	return repo
}

func provideBillingAccounts(repo auth.Repository) billing.Accounts {
	return repo
}

func provideHandlers(authH *httpiface.AuthHandler, lifestyleH *httpiface.LifestyleHandler, healthH *httpiface.HealthHandler, billingH *httpiface.BillingHandler) httpiface.Handlers {
	return httpiface.Handlers{
		Auth:      authH,
		Lifestyle: lifestyleH,
		Health:    healthH,
		Billing:   billingH,
	}
}
