package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/health-companion/internal/domain/billing"
)

const defaultBaseURL = "https://api.paystack.co"

// Client talks to the Paystack transaction API.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(secretKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("paystack secret key cannot be empty")
	}
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Initialize starts a hosted checkout transaction.
func (c *Client) Initialize(ctx context.Context, email string, amountKobo int64, reference, callbackURL string) (billing.CheckoutData, error) {
	payload, err := json.Marshal(initializeRequest{
		Email:       email,
		Amount:      amountKobo,
		Reference:   reference,
		CallbackURL: callbackURL,
	})
	if err != nil {
		return billing.CheckoutData{}, fmt.Errorf("encode initialize request: %w", err)
	}

	var out initializeResponse
	if err := c.doRequest(ctx, http.MethodPost, "/transaction/initialize", payload, &out); err != nil {
		return billing.CheckoutData{}, err
	}
	if !out.Status {
		return billing.CheckoutData{}, fmt.Errorf("paystack initialize rejected: %s", out.Message)
	}
	return billing.CheckoutData{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

// Verify fetches the settled state of a transaction.
func (c *Client) Verify(ctx context.Context, reference string) (billing.VerifyData, error) {
	path := "/transaction/verify/" + url.PathEscape(reference)

	var out verifyResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return billing.VerifyData{}, err
	}
	if !out.Status {
		return billing.VerifyData{}, fmt.Errorf("paystack verify rejected: %s", out.Message)
	}
	return billing.VerifyData{
		Status:          out.Data.Status,
		Reference:       out.Data.Reference,
		Amount:          out.Data.Amount,
		GatewayResponse: out.Data.GatewayResponse,
		PaidAt:          out.Data.PaidAt,
	}, nil
}

// ValidateWebhook checks the x-paystack-signature header, an HMAC-SHA512 of
// the raw body keyed with the secret key.
func (c *Client) ValidateWebhook(payload []byte, signature string) bool {
	if strings.TrimSpace(signature) == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("paystack request error: status=%d body=%s", resp.StatusCode, string(raw))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode paystack response: %w", err)
	}
	return nil
}

type initializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status          string `json:"status"`
		Reference       string `json:"reference"`
		Amount          int64  `json:"amount"`
		GatewayResponse string `json:"gateway_response"`
		PaidAt          string `json:"paid_at"`
	} `json:"data"`
}
