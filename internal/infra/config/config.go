package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	LLM     LLMConfig     `yaml:"llm"`
	Weather WeatherConfig `yaml:"weather"`
	Billing BillingConfig `yaml:"billing"`
	Storage StorageConfig `yaml:"storage"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent GET requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
}

// AuthConfig holds token signing and revocation settings.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	TokenTTL        time.Duration `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTtl"`
	Valkey          ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the revoked-token store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LLMConfig contains the OpenAI-compatible assistant settings. An empty API
// key puts the advisor in rule-based fallback mode.
type LLMConfig struct {
	APIKey             string  `yaml:"apiKey"`
	BaseURL            string  `yaml:"baseUrl"`
	Model              string  `yaml:"model"`
	Temperature        float32 `yaml:"temperature"`
	TipMaxTokens       int     `yaml:"tipMaxTokens"`
	ChatMaxTokens      int     `yaml:"chatMaxTokens"`
	ContextTokenBudget int     `yaml:"contextTokenBudget"`
}

// WeatherConfig controls the OpenWeatherMap integration. An empty API key
// makes every lookup resolve to the mock snapshot.
type WeatherConfig struct {
	APIKey          string `yaml:"apiKey"`
	BaseURL         string `yaml:"baseUrl"`
	DefaultLocation string `yaml:"defaultLocation"`
}

// BillingConfig controls the Paystack integration. Missing secret key enables
// mock mode end to end.
type BillingConfig struct {
	SecretKey         string `yaml:"secretKey"`
	PublicKey         string `yaml:"publicKey"`
	BaseURL           string `yaml:"baseUrl"`
	CallbackBaseURL   string `yaml:"callbackBaseUrl"`
	PremiumAmountKobo int64  `yaml:"premiumAmountKobo"`
	Currency          string `yaml:"currency"`
}

// StorageConfig contains DSN and pooling settings. Empty DSN selects the
// in-memory repositories.
type StorageConfig struct {
	PostgresDSN string `yaml:"postgresDsn"`
	MaxConns    int32  `yaml:"maxConns"`
	MinConns    int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		cfg.HTTP.AllowedOrigins = origins
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("AUTH_REFRESH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.RefreshTokenTTL = parsed
		}
	}
	if v := os.Getenv("AUTH_VALKEY_ENABLED"); v != "" {
		cfg.Auth.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("AUTH_VALKEY_ADDR"); v != "" {
		cfg.Auth.Valkey.Addr = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_CONTEXT_TOKEN_BUDGET"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.ContextTokenBudget = parsed
		}
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("OPENWEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_DEFAULT_LOCATION"); v != "" {
		cfg.Weather.DefaultLocation = v
	}
	if v := os.Getenv("PAYSTACK_SECRET_KEY"); v != "" {
		cfg.Billing.SecretKey = v
	}
	if v := os.Getenv("PAYSTACK_PUBLIC_KEY"); v != "" {
		cfg.Billing.PublicKey = v
	}
	if v := os.Getenv("PAYSTACK_BASE_URL"); v != "" {
		cfg.Billing.BaseURL = v
	}
	if v := os.Getenv("BILLING_CALLBACK_BASE_URL"); v != "" {
		cfg.Billing.CallbackBaseURL = v
	}
	if v := os.Getenv("BILLING_PREMIUM_AMOUNT_KOBO"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Billing.PremiumAmountKobo = parsed
		}
	}
	if v := os.Getenv("STORAGE_POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("STORAGE_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORAGE_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
			},
		},
		Auth: AuthConfig{
			Secret:          "dev-secret-key-change-in-production",
			TokenTTL:        time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		LLM: LLMConfig{
			Model:              "gpt-5",
			Temperature:        0.2,
			TipMaxTokens:       500,
			ChatMaxTokens:      300,
			ContextTokenBudget: 1500,
		},
		Weather: WeatherConfig{
			BaseURL:         "https://api.openweathermap.org/data/2.5",
			DefaultLocation: "Lagos",
		},
		Billing: BillingConfig{
			BaseURL:           "https://api.paystack.co",
			CallbackBaseURL:   "http://localhost:8080",
			PremiumAmountKobo: 5000,
			Currency:          "NGN",
		},
		Storage: StorageConfig{
			MaxConns: 4,
			MinConns: 0,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive")
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth.refreshTokenTtl must be positive")
	}
	if c.Auth.Valkey.Enabled && strings.TrimSpace(c.Auth.Valkey.Addr) == "" {
		return errors.New("auth.valkey.addr cannot be empty when the valkey store is enabled")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.ContextTokenBudget <= 0 {
		return errors.New("llm.contextTokenBudget must be positive")
	}
	if c.Weather.BaseURL == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Weather.DefaultLocation) == "" {
		return errors.New("weather.defaultLocation cannot be empty")
	}
	if c.Billing.BaseURL == "" {
		return errors.New("billing.baseUrl cannot be empty")
	}
	if c.Billing.PremiumAmountKobo <= 0 {
		return errors.New("billing.premiumAmountKobo must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
