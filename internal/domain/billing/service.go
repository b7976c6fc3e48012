package billing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/health-companion/internal/domain/auth"
	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

const mockPublicKey = "pk_test_mock_key"

// Gateway talks to the payment processor. A nil gateway means no secret key
// is configured and the service runs in mock mode.
type Gateway interface {
	Initialize(ctx context.Context, email string, amountKobo int64, reference, callbackURL string) (CheckoutData, error)
	Verify(ctx context.Context, reference string) (VerifyData, error)
	ValidateWebhook(payload []byte, signature string) bool
}

// Accounts is the slice of user persistence billing needs: looking up the
// payer and flipping the premium flag after a settled charge.
type Accounts interface {
	GetByID(ctx context.Context, id int64) (auth.User, bool, error)
	SetPremium(ctx context.Context, id int64, premium bool) error
}

// Service exposes the premium upgrade workflows.
type Service interface {
	Checkout(ctx context.Context, userID int64, amountKobo int64) (CheckoutResult, error)
	Verify(ctx context.Context, reference string, mock bool) (VerifyResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	PublicConfig() PublicConfig
}

type service struct {
	cfg      Config
	gateway  Gateway
	repo     Repository
	accounts Accounts
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the billing domain.
func NewService(cfg Config, gateway Gateway, repo Repository, accounts Accounts, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		gateway:  gateway,
		repo:     repo,
		accounts: accounts,
		logger:   logger.With("component", "billing.service"),
		now:      time.Now,
	}
}

func (s *service) Checkout(ctx context.Context, userID int64, amountKobo int64) (CheckoutResult, error) {
	user, found, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return CheckoutResult{}, apperrors.Wrap("payment_error", "failed to load user", err)
	}
	if !found {
		return CheckoutResult{}, apperrors.Wrap("user_not_found", "user not found", nil)
	}
	if amountKobo <= 0 {
		amountKobo = s.cfg.DefaultAmountKobo
	}

	reference := newReference(userID)

	if s.gateway == nil {
		if err := s.recordPayment(ctx, userID, reference, amountKobo); err != nil {
			return CheckoutResult{}, err
		}
		return CheckoutResult{
			Status: StatusSuccess,
			Data: CheckoutData{
				AuthorizationURL: fmt.Sprintf("/api/v1/billing/verify?reference=%s&mock=true", reference),
				AccessCode:       "mock_access_code",
				Reference:        reference,
			},
			MockMode: true,
		}, nil
	}

	callbackURL := fmt.Sprintf("%s/api/v1/billing/verify?reference=%s", strings.TrimRight(s.cfg.CallbackBaseURL, "/"), reference)
	data, err := s.gateway.Initialize(ctx, user.Email, amountKobo, reference, callbackURL)
	if err != nil {
		return CheckoutResult{}, apperrors.Wrap("payment_error", "payment initialization failed", err)
	}
	if err := s.recordPayment(ctx, userID, reference, amountKobo); err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{Status: StatusSuccess, Data: data}, nil
}

func (s *service) Verify(ctx context.Context, reference string, mock bool) (VerifyResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return VerifyResult{}, apperrors.Wrap("invalid_input", "reference is required", nil)
	}
	payment, found, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return VerifyResult{}, apperrors.Wrap("payment_error", "failed to load payment", err)
	}
	if !found {
		return VerifyResult{}, apperrors.Wrap("payment_not_found", "payment not found", nil)
	}

	if mock || s.gateway == nil {
		if err := s.settle(ctx, payment); err != nil {
			return VerifyResult{}, err
		}
		return VerifyResult{
			Status: StatusSuccess,
			Data: VerifyData{
				Status:          StatusSuccess,
				Reference:       reference,
				Amount:          int64(payment.Amount * 100),
				GatewayResponse: "Approved (Mock)",
				PaidAt:          payment.CreatedAt.Format(time.RFC3339),
			},
			MockMode: true,
		}, nil
	}

	data, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return VerifyResult{}, apperrors.Wrap("payment_error", "payment verification failed", err)
	}
	if data.Status != StatusSuccess {
		if _, err := s.repo.UpdateStatus(ctx, reference, StatusFailed); err != nil {
			s.logger.Error("failed to mark payment failed", "reference", reference, "error", err)
		}
		return VerifyResult{}, apperrors.Wrap("payment_failed", "payment verification failed", nil)
	}
	if err := s.settle(ctx, payment); err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{Status: StatusSuccess, Data: data}, nil
}

func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.gateway != nil && !s.gateway.ValidateWebhook(payload, signature) {
		return apperrors.Wrap("invalid_signature", "webhook signature mismatch", nil)
	}
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return apperrors.Wrap("invalid_input", "webhook payload malformed", err)
	}
	if event.Event != "charge.success" {
		return nil
	}
	payment, found, err := s.repo.GetByReference(ctx, event.Data.Reference)
	if err != nil {
		return apperrors.Wrap("payment_error", "failed to load payment", err)
	}
	if !found {
		s.logger.Warn("webhook for unknown payment", "reference", event.Data.Reference)
		return nil
	}
	if err := s.settle(ctx, payment); err != nil {
		return err
	}
	s.logger.Info("webhook payment confirmed", "reference", payment.Reference, "user_id", payment.UserID)
	return nil
}

func (s *service) PublicConfig() PublicConfig {
	key := s.cfg.PublicKey
	if key == "" {
		key = mockPublicKey
	}
	return PublicConfig{
		PublicKey: key,
		MockMode:  s.gateway == nil,
	}
}

func (s *service) recordPayment(ctx context.Context, userID int64, reference string, amountKobo int64) error {
	_, err := s.repo.Create(ctx, Payment{
		UserID:    userID,
		Reference: reference,
		Amount:    float64(amountKobo) / 100,
		Currency:  s.cfg.Currency,
		Status:    StatusPending,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return apperrors.Wrap("payment_error", "failed to record payment", err)
	}
	return nil
}

func (s *service) settle(ctx context.Context, payment Payment) error {
	if _, err := s.repo.UpdateStatus(ctx, payment.Reference, StatusSuccess); err != nil {
		return apperrors.Wrap("payment_error", "failed to update payment", err)
	}
	if err := s.accounts.SetPremium(ctx, payment.UserID, true); err != nil {
		return apperrors.Wrap("payment_error", "failed to upgrade account", err)
	}
	return nil
}

func newReference(userID int64) string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("HC_%d_%d", userID, time.Now().UnixNano())
	}
	return fmt.Sprintf("HC_%d_%s", userID, hex.EncodeToString(buf))
}
