package billing

import "time"

// Payment statuses move pending -> success or pending -> failed.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Payment records a premium upgrade attempt. Amount is stored in naira while
// gateway wire amounts are in kobo.
type Payment struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Config drives checkout behavior.
type Config struct {
	PublicKey         string
	CallbackBaseURL   string
	DefaultAmountKobo int64
	Currency          string
}

// CheckoutRequest carries the optional amount override in kobo.
type CheckoutRequest struct {
	AmountKobo int64 `json:"amount"`
}

// CheckoutData mirrors the gateway initialize payload consumed by the
// frontend.
type CheckoutData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// CheckoutResult is returned from a checkout call.
type CheckoutResult struct {
	Status   string       `json:"status"`
	Data     CheckoutData `json:"data"`
	MockMode bool         `json:"mock_mode,omitempty"`
}

// VerifyData describes the settled state of one transaction.
type VerifyData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	GatewayResponse string `json:"gateway_response"`
	PaidAt          string `json:"paid_at"`
}

// VerifyResult is returned from a verification call.
type VerifyResult struct {
	Status   string     `json:"status"`
	Data     VerifyData `json:"data"`
	MockMode bool       `json:"mock_mode,omitempty"`
}

// PublicConfig is the safe subset of billing settings exposed to clients.
type PublicConfig struct {
	PublicKey string `json:"public_key"`
	MockMode  bool   `json:"mock_mode"`
}

// WebhookEvent is the envelope delivered by the gateway.
type WebhookEvent struct {
	Event string           `json:"event"`
	Data  WebhookEventData `json:"data"`
}

// WebhookEventData carries the transaction fields the service acts on.
type WebhookEventData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}
