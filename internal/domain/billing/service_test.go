package billing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/health-companion/internal/domain/auth"
	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

type stubAccounts struct {
	users      map[int64]auth.User
	premiumSet map[int64]bool
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{
		users:      map[int64]auth.User{1: {ID: 1, Email: "ada@example.com"}},
		premiumSet: map[int64]bool{},
	}
}

func (s *stubAccounts) GetByID(_ context.Context, id int64) (auth.User, bool, error) {
	user, ok := s.users[id]
	return user, ok, nil
}

func (s *stubAccounts) SetPremium(_ context.Context, id int64, premium bool) error {
	s.premiumSet[id] = premium
	return nil
}

type stubPaymentRepo struct {
	payments map[string]Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: map[string]Payment{}}
}

func (s *stubPaymentRepo) Create(_ context.Context, payment Payment) (Payment, error) {
	payment.ID = "pay-1"
	s.payments[payment.Reference] = payment
	return payment, nil
}

func (s *stubPaymentRepo) GetByReference(_ context.Context, reference string) (Payment, bool, error) {
	payment, ok := s.payments[reference]
	return payment, ok, nil
}

func (s *stubPaymentRepo) UpdateStatus(_ context.Context, reference, status string) (Payment, error) {
	payment, ok := s.payments[reference]
	if !ok {
		return Payment{}, errors.New("payment missing")
	}
	payment.Status = status
	s.payments[reference] = payment
	return payment, nil
}

type stubGateway struct {
	initData   CheckoutData
	initErr    error
	verifyData VerifyData
	verifyErr  error
	validSig   bool
	gotAmount  int64
	gotEmail   string
}

func (s *stubGateway) Initialize(_ context.Context, email string, amountKobo int64, reference, callbackURL string) (CheckoutData, error) {
	s.gotEmail = email
	s.gotAmount = amountKobo
	if s.initErr != nil {
		return CheckoutData{}, s.initErr
	}
	data := s.initData
	data.Reference = reference
	return data, nil
}

func (s *stubGateway) Verify(_ context.Context, reference string) (VerifyData, error) {
	if s.verifyErr != nil {
		return VerifyData{}, s.verifyErr
	}
	data := s.verifyData
	data.Reference = reference
	return data, nil
}

func (s *stubGateway) ValidateWebhook(_ []byte, _ string) bool {
	return s.validSig
}

func testBillingConfig() Config {
	return Config{
		PublicKey:         "pk_test_abc",
		CallbackBaseURL:   "https://app.example.com",
		DefaultAmountKobo: 5000,
		Currency:          "NGN",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckoutMockMode(t *testing.T) {
	repo := newStubPaymentRepo()
	svc := NewService(testBillingConfig(), nil, repo, newStubAccounts(), discardLogger())

	result, err := svc.Checkout(context.Background(), 1, 0)

	require.NoError(t, err)
	require.True(t, result.MockMode)
	require.Equal(t, "mock_access_code", result.Data.AccessCode)
	require.True(t, strings.HasPrefix(result.Data.Reference, "HC_1_"))
	require.Contains(t, result.Data.AuthorizationURL, "mock=true")

	payment, ok, err := repo.GetByReference(context.Background(), result.Data.Reference)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, StatusPending, payment.Status)
	require.Equal(t, 50.0, payment.Amount)
	require.Equal(t, "NGN", payment.Currency)
}

func TestCheckoutLiveGateway(t *testing.T) {
	gateway := &stubGateway{initData: CheckoutData{AuthorizationURL: "https://pay.example.com/x", AccessCode: "ac_1"}}
	svc := NewService(testBillingConfig(), gateway, newStubPaymentRepo(), newStubAccounts(), discardLogger())

	result, err := svc.Checkout(context.Background(), 1, 7000)

	require.NoError(t, err)
	require.False(t, result.MockMode)
	require.Equal(t, "https://pay.example.com/x", result.Data.AuthorizationURL)
	require.Equal(t, int64(7000), gateway.gotAmount)
	require.Equal(t, "ada@example.com", gateway.gotEmail)
}

func TestCheckoutUnknownUser(t *testing.T) {
	svc := NewService(testBillingConfig(), nil, newStubPaymentRepo(), newStubAccounts(), discardLogger())

	_, err := svc.Checkout(context.Background(), 99, 0)

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "user_not_found"))
}

func TestVerifyMockModeUpgradesAccount(t *testing.T) {
	repo := newStubPaymentRepo()
	accounts := newStubAccounts()
	svc := NewService(testBillingConfig(), nil, repo, accounts, discardLogger())

	checkout, err := svc.Checkout(context.Background(), 1, 0)
	require.NoError(t, err)

	result, err := svc.Verify(context.Background(), checkout.Data.Reference, true)

	require.NoError(t, err)
	require.True(t, result.MockMode)
	require.Equal(t, StatusSuccess, result.Data.Status)
	require.Equal(t, "Approved (Mock)", result.Data.GatewayResponse)
	require.Equal(t, int64(5000), result.Data.Amount)
	require.True(t, accounts.premiumSet[1])

	payment, _, _ := repo.GetByReference(context.Background(), checkout.Data.Reference)
	require.Equal(t, StatusSuccess, payment.Status)
}

func TestVerifyUnknownReference(t *testing.T) {
	svc := NewService(testBillingConfig(), nil, newStubPaymentRepo(), newStubAccounts(), discardLogger())

	_, err := svc.Verify(context.Background(), "HC_1_missing", false)

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "payment_not_found"))
}

func TestVerifyFailedChargeMarksPayment(t *testing.T) {
	gateway := &stubGateway{verifyData: VerifyData{Status: "failed"}}
	repo := newStubPaymentRepo()
	accounts := newStubAccounts()
	svc := NewService(testBillingConfig(), gateway, repo, accounts, discardLogger())

	checkout, err := svc.Checkout(context.Background(), 1, 0)
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), checkout.Data.Reference, false)

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "payment_failed"))
	require.False(t, accounts.premiumSet[1])

	payment, _, _ := repo.GetByReference(context.Background(), checkout.Data.Reference)
	require.Equal(t, StatusFailed, payment.Status)
}

func TestWebhookChargeSuccess(t *testing.T) {
	gateway := &stubGateway{validSig: true, initData: CheckoutData{AccessCode: "ac"}}
	repo := newStubPaymentRepo()
	accounts := newStubAccounts()
	svc := NewService(testBillingConfig(), gateway, repo, accounts, discardLogger())

	checkout, err := svc.Checkout(context.Background(), 1, 0)
	require.NoError(t, err)

	payload := []byte(`{"event": "charge.success", "data": {"reference": "` + checkout.Data.Reference + `"}}`)
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))

	require.True(t, accounts.premiumSet[1])
	payment, _, _ := repo.GetByReference(context.Background(), checkout.Data.Reference)
	require.Equal(t, StatusSuccess, payment.Status)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	gateway := &stubGateway{validSig: false}
	svc := NewService(testBillingConfig(), gateway, newStubPaymentRepo(), newStubAccounts(), discardLogger())

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "bad")

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_signature"))
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	accounts := newStubAccounts()
	svc := NewService(testBillingConfig(), nil, newStubPaymentRepo(), accounts, discardLogger())

	payload := []byte(`{"event": "transfer.success", "data": {"reference": "HC_1_x"}}`)
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, ""))
	require.Empty(t, accounts.premiumSet)
}

func TestPublicConfig(t *testing.T) {
	svc := NewService(testBillingConfig(), nil, newStubPaymentRepo(), newStubAccounts(), discardLogger())
	cfg := svc.PublicConfig()
	require.Equal(t, "pk_test_abc", cfg.PublicKey)
	require.True(t, cfg.MockMode)

	live := NewService(Config{}, &stubGateway{}, newStubPaymentRepo(), newStubAccounts(), discardLogger())
	cfg = live.PublicConfig()
	require.Equal(t, mockPublicKey, cfg.PublicKey)
	require.False(t, cfg.MockMode)
}
