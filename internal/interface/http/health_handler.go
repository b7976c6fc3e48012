package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/health-companion/internal/domain/advisor"
	"github.com/yanqian/health-companion/internal/domain/auth"
	"github.com/yanqian/health-companion/internal/domain/lifestyle"
	"github.com/yanqian/health-companion/internal/domain/weather"
	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

// HealthHandler serves the recommendation surface: tips, chat, weather and
// alerts.
type HealthHandler struct {
	advisorSvc   advisor.Service
	weatherSvc   weather.Service
	authSvc      auth.Service
	lifestyleSvc lifestyle.Service
	logger       *slog.Logger
}

// NewHealthHandler constructs the health handler.
func NewHealthHandler(advisorSvc advisor.Service, weatherSvc weather.Service, authSvc auth.Service, lifestyleSvc lifestyle.Service, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		advisorSvc:   advisorSvc,
		weatherSvc:   weatherSvc,
		authSvc:      authSvc,
		lifestyleSvc: lifestyleSvc,
		logger:       logger.With("component", "http.health"),
	}
}

func (h *HealthHandler) userInfo(c *gin.Context) (advisor.UserInfo, bool) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return advisor.UserInfo{}, false
	}

	view, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "user_not_found") {
			status = http.StatusNotFound
			code = "user_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return advisor.UserInfo{}, false
	}

	return advisor.UserInfo{ID: view.ID, Name: view.Name, IsPremium: view.IsPremium}, true
}

// Tips returns personalized health tips. Degraded AI or weather dependencies
// fall back to the rule-based set, so this endpoint never fails past auth.
func (h *HealthHandler) Tips(c *gin.Context) {
	user, ok := h.userInfo(c)
	if !ok {
		return
	}

	tips := h.advisorSvc.Tips(c.Request.Context(), user)
	c.JSON(http.StatusOK, gin.H{"tips": tips})
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat forwards a free-form question to the assistant.
func (h *HealthHandler) Chat(c *gin.Context) {
	user, ok := h.userInfo(c)
	if !ok {
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	reply, err := h.advisorSvc.Chat(c.Request.Context(), user, req.Message)
	if err != nil {
		status := http.StatusInternalServerError
		code := "chat_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// Weather returns current conditions and risk levels. The location resolves
// query param first, then the profile location, then the configured default.
func (h *HealthHandler) Weather(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return
	}

	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		profile, found, err := h.lifestyleSvc.Profile(c.Request.Context(), claims.UserID)
		if err != nil {
			h.logger.Warn("profile unavailable for weather lookup", "user_id", claims.UserID, "error", err)
		} else if found {
			location = profile.Location
		}
	}

	snapshot := h.weatherSvc.Current(c.Request.Context(), location)
	c.JSON(http.StatusOK, snapshot)
}

// Alerts returns the weather-driven health alerts.
func (h *HealthHandler) Alerts(c *gin.Context) {
	user, ok := h.userInfo(c)
	if !ok {
		return
	}

	alerts, err := h.advisorSvc.Alerts(c.Request.Context(), user)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "alerts_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
