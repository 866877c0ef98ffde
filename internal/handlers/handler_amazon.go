package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/dto"
	"github.com/sellerpulse/auth-backend/internal/middleware"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
)

// AmazonAuthHandler handles Selling Partner OAuth requests.
type AmazonAuthHandler struct {
	sellerService   portssvc.SellerAuthSvcFacade
	frontendBaseURL string
	debug           bool
}

// NewAmazonAuthHandler creates a new AmazonAuthHandler.
func NewAmazonAuthHandler(sellerService portssvc.SellerAuthSvcFacade, cfg *config.Config) *AmazonAuthHandler {
	return &AmazonAuthHandler{
		sellerService:   sellerService,
		frontendBaseURL: cfg.FrontendBaseURL,
		debug:           cfg.Debug,
	}
}

// GetAuthURL godoc
// @Summary Build the Seller Central consent URL
// @Tags amazon
// @Produce json
// @Param region query string false "Marketplace region" Enums(na, eu, fe, in) default(na)
// @Success 200 {object} dto.AuthURLData
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /api/amazon/auth-url [get]
func (h *AmazonAuthHandler) GetAuthURL(c *gin.Context) {
	var query dto.AuthURLQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid region"))
		return
	}
	if query.Region == "" {
		query.Region = "na"
	}

	authURL, err := h.sellerService.AuthorizationURL(query.Region)
	if err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuthURLData{AuthURL: authURL})
}

// HandleCallback godoc
// @Summary OAuth callback from Seller Central
// @Description Exchanges the authorization code and redirects to the frontend.
// @Tags amazon
// @Produce json
// @Param code query string true "Authorization code"
// @Param selling_partner_id query string true "Seller ID"
// @Param marketplace_id query string true "Marketplace ID"
// @Success 302
// @Router /api/amazon/callback [get]
func (h *AmazonAuthHandler) HandleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.CallbackQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Amazon callback missing parameters", slog.String("error", err.Error()))
		c.Redirect(http.StatusFound, h.frontendBaseURL+"/auth/error")
		return
	}

	err := h.sellerService.HandleCallback(c.Request.Context(), query.Code, query.SellingPartnerID, query.MarketplaceID)
	if err != nil {
		logger.Error("Amazon token exchange failed",
			slog.String("seller_id", query.SellingPartnerID),
			slog.String("error", err.Error()))
		c.Redirect(http.StatusFound, h.frontendBaseURL+"/auth/error")
		return
	}

	logger.Info("Amazon seller linked", slog.String("seller_id", query.SellingPartnerID))
	c.Redirect(http.StatusFound, h.frontendBaseURL+"/auth/success")
}

// RefreshSellerToken godoc
// @Summary Refresh a stored seller access token
// @Tags amazon
// @Produce json
// @Param sellerId path string true "Seller ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 500 {object} dto.Response
// @Security BearerAuth
// @Router /api/amazon/refresh-token/{sellerId} [post]
func (h *AmazonAuthHandler) RefreshSellerToken(c *gin.Context) {
	sellerID := c.Param("sellerId")
	if sellerID == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("Seller ID is required"))
		return
	}

	if err := h.sellerService.RefreshSellerToken(c.Request.Context(), sellerID); err != nil {
		respondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("Seller token refreshed successfully", nil))
}
