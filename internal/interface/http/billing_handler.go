package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/health-companion/internal/domain/billing"
	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

// BillingHandler serves the premium upgrade endpoints.
type BillingHandler struct {
	svc    billing.Service
	logger *slog.Logger
}

// NewBillingHandler constructs the billing handler.
func NewBillingHandler(svc billing.Service, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		svc:    svc,
		logger: logger.With("component", "http.billing"),
	}
}

// Checkout initializes a premium upgrade transaction.
func (h *BillingHandler) Checkout(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return
	}

	var req billing.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
	}

	result, err := h.svc.Checkout(c.Request.Context(), claims.UserID, req.AmountKobo)
	if err != nil {
		status := http.StatusInternalServerError
		code := "payment_error"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "user_not_found"):
			status = http.StatusNotFound
			code = "user_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// Verify confirms a transaction and flips the account to premium on success.
func (h *BillingHandler) Verify(c *gin.Context) {
	if _, ok := getClaims(c); !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return
	}

	reference := c.Query("reference")
	if reference == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "reference is required", nil))
		return
	}
	mock := c.Query("mock") == "true"

	result, err := h.svc.Verify(c.Request.Context(), reference, mock)
	if err != nil {
		status := http.StatusInternalServerError
		code := "payment_error"
		switch {
		case apperrors.IsCode(err, "payment_not_found"):
			status = http.StatusNotFound
			code = "payment_not_found"
		case apperrors.IsCode(err, "payment_failed"):
			status = http.StatusBadRequest
			code = "payment_failed"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// Webhook consumes gateway callbacks. The raw body is needed for signature
// verification, so the JSON binder is bypassed.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read webhook body", err))
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if err := h.svc.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		status := http.StatusInternalServerError
		code := "payment_error"
		switch {
		case apperrors.IsCode(err, "invalid_signature"):
			status = http.StatusUnauthorized
			code = "invalid_signature"
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Config exposes the public billing settings used by the payment widget.
func (h *BillingHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.PublicConfig())
}
