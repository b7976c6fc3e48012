package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/health-companion/internal/domain/lifestyle"
	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

// LifestyleHandler serves daily log and chart endpoints.
type LifestyleHandler struct {
	svc    lifestyle.Service
	logger *slog.Logger
}

// NewLifestyleHandler constructs the lifestyle handler.
func NewLifestyleHandler(svc lifestyle.Service, logger *slog.Logger) *LifestyleHandler {
	return &LifestyleHandler{
		svc:    svc,
		logger: logger.With("component", "http.lifestyle"),
	}
}

// CreateLog records one day of lifestyle metrics.
func (h *LifestyleHandler) CreateLog(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return
	}

	var req lifestyle.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	entry, err := h.svc.CreateLog(c.Request.Context(), claims.UserID, req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "log_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Log created successfully", "log": entry})
}

// ListLogs returns recent entries, most recent first.
func (h *LifestyleHandler) ListLogs(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a positive integer", err))
			return
		}
		limit = parsed
	}

	logs, err := h.svc.Logs(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "log_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// Chart returns the 7-day series for the dashboard chart.
func (h *LifestyleHandler) Chart(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return
	}

	data, err := h.svc.ChartData(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "chart_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, data)
}
