package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sellerpulse/auth-backend/internal/apperrors"
	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/dto"
	"github.com/sellerpulse/auth-backend/internal/middleware"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
	debug       bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService portssvc.AuthSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		debug:       cfg.Debug,
	}
}

// respondError maps service errors onto the response envelope. Detail is
// only populated in debug mode.
func respondError(c *gin.Context, debug bool, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp := dto.Fail(appErr.Message)
		if debug {
			resp.Detail = appErr.WithDetail().Detail
		}
		c.JSON(appErr.Code, resp)
		return
	}

	// Repository layers return bare sentinels; map the common ones.
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail("Resource not found"))
		return
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusBadRequest, dto.Fail("Resource already exists"))
		return
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	logger.Error("Unhandled service error", slog.String("error", err.Error()))
	resp := dto.Fail("Internal server error")
	if debug {
		resp.Detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// Signup godoc
// @Summary Register a new user
// @Description Creates an unverified account and emails a verification code.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Registration info"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	data, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("User registered successfully. Please verify your email.", data))
}

// VerifyEmail godoc
// @Summary Verify email with OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Email and OTP"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), req); err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Email verified successfully", nil))
}

// ResendVerification godoc
// @Summary Resend the verification OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param resend body dto.ResendVerificationRequest true "Email"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	previewURL, err := h.authService.ResendVerification(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.debug, err)
		return
	}
	resp := dto.OK("Verification OTP sent successfully", nil)
	resp.PreviewURL = previewURL
	c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	data, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Login successful", data))
}

// RefreshToken godoc
// @Summary Mint a new access token from a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Router /api/auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Refresh token is required"))
		return
	}

	data, err := h.authService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Token refreshed successfully", data))
}

// Logout godoc
// @Summary Revoke the current token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param logout body dto.LogoutRequest true "Token pair"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Authentication required"))
		return
	}

	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Access token and refresh token are required"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID, req); err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Logged out successfully", nil))
}

// VerifyAuth godoc
// @Summary Check that the presented access token is valid
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /api/auth/verify-auth [get]
func (h *AuthHandler) VerifyAuth(c *gin.Context) {
	// AuthMiddleware already verified the token and the revocation registry.
	c.JSON(http.StatusOK, dto.OK("User is authenticated", nil))
}

// Deactivate godoc
// @Summary Deactivate the authenticated account
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /api/auth/deactivate [post]
func (h *AuthHandler) Deactivate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Authentication required"))
		return
	}

	if err := h.authService.Deactivate(c.Request.Context(), userID); err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Account deactivated successfully", nil))
}

// Reactivate godoc
// @Summary Reactivate a deactivated account
// @Tags auth
// @Accept json
// @Produce json
// @Param reactivate body dto.ReactivateRequest true "Credentials"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 401 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/auth/reactivate [post]
func (h *AuthHandler) Reactivate(c *gin.Context) {
	var req dto.ReactivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := h.authService.Reactivate(c.Request.Context(), req); err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Account reactivated successfully", nil))
}

// RequestPasswordReset godoc
// @Summary Send a password reset OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestPasswordResetRequest true "Email"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/auth/request-password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	previewURL, err := h.authService.RequestPasswordReset(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.debug, err)
		return
	}
	resp := dto.OK("Password reset OTP sent successfully", nil)
	resp.PreviewURL = previewURL
	c.JSON(http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary Reset the password with an OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Email, OTP and new password"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req); err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Password reset successfully", nil))
}
