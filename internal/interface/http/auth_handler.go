package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/health-companion/internal/domain/auth"
	"github.com/yanqian/health-companion/internal/domain/lifestyle"
	apperrors "github.com/yanqian/health-companion/pkg/errors"
)

// AuthHandler serves registration, login and account endpoints.
type AuthHandler struct {
	authSvc      auth.Service
	lifestyleSvc lifestyle.Service
	logger       *slog.Logger
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(authSvc auth.Service, lifestyleSvc lifestyle.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authSvc:      authSvc,
		lifestyleSvc: lifestyleSvc,
		logger:       logger.With("component", "http.auth"),
	}
}

// Register creates an account plus its wellness profile and signs the user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "registration_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "email_exists"):
			status = http.StatusConflict
			code = "email_exists"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "login_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "invalid_credentials"):
			status = http.StatusUnauthorized
			code = "invalid_credentials"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh rotates the token pair using a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		status := http.StatusInternalServerError
		code := "refresh_failed"
		switch {
		case apperrors.IsCode(err, "invalid_token"):
			status = http.StatusUnauthorized
			code = "invalid_token"
		case apperrors.IsCode(err, "user_not_found"):
			status = http.StatusNotFound
			code = "user_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented access token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header", nil))
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		status := http.StatusInternalServerError
		code := "logout_failed"
		if apperrors.IsCode(err, "invalid_token") {
			status = http.StatusUnauthorized
			code = "invalid_token"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Profile returns the account view together with the wellness profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "user_not_found") {
			status = http.StatusNotFound
			code = "user_not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	profile, found, err := h.lifestyleSvc.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "profile_failed", errMessage(err), err))
		return
	}

	body := gin.H{"user": user}
	if found {
		body["profile"] = profile
	} else {
		body["profile"] = nil
	}
	c.JSON(http.StatusOK, body)
}

// UpdateProfile replaces the wellness profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing auth context", nil))
		return
	}

	var req lifestyle.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	profile, err := h.lifestyleSvc.UpdateProfile(c.Request.Context(), claims.UserID, req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "profile": profile})
}
