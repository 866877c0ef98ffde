package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sellerpulse/auth-backend/cmd/docs"
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/middleware"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
)

// spRegions are the Seller Central region shorthands accepted on auth-url.
var spRegions = map[string]bool{"na": true, "eu": true, "fe": true, "in": true}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	blacklistRepo portsrepo.TokenBlacklistRepositoryFacade,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services, blacklistRepo)
	registerAmazonRoutes(r, cfg, services, blacklistRepo)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators hooks domain-specific rules into gin's binding
// validator.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("spregion", func(fl validator.FieldLevel) bool {
			return spRegions[fl.Field().String()]
		})
	}
}

// registerAuthRoutes configures /api/auth. Credential endpoints share one
// limiter, OTP dispatch endpoints a stricter one.
func registerAuthRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	blacklistRepo portsrepo.TokenBlacklistRepositoryFacade,
) {
	authHandler := NewAuthHandler(services.Auth, cfg)

	authLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 5})
	otpLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 3})

	auth := r.Group("/api/auth")

	auth.POST("/signup", middleware.RateLimit(authLimiter), authHandler.Signup)
	auth.POST("/verify-email", middleware.RateLimit(authLimiter), middleware.RateLimit(otpLimiter), authHandler.VerifyEmail)
	auth.POST("/resend-verification", middleware.RateLimit(otpLimiter), authHandler.ResendVerification)
	auth.POST("/login", middleware.RateLimit(authLimiter), authHandler.Login)
	auth.POST("/refresh-token", authHandler.RefreshToken)
	auth.POST("/reactivate", authHandler.Reactivate)
	auth.POST("/request-password-reset", middleware.RateLimit(otpLimiter), authHandler.RequestPasswordReset)
	auth.POST("/reset-password", middleware.RateLimit(otpLimiter), authHandler.ResetPassword)

	// Routes below require a valid, unrevoked access token.
	protected := auth.Group("", middleware.AuthMiddleware(services.Token, blacklistRepo))
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/verify-auth", authHandler.VerifyAuth)
	protected.POST("/deactivate", authHandler.Deactivate)
}

// registerAmazonRoutes configures /api/amazon. The OAuth callback must stay
// public: Amazon redirects the merchant's browser there without our token.
func registerAmazonRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	blacklistRepo portsrepo.TokenBlacklistRepositoryFacade,
) {
	amazonHandler := NewAmazonAuthHandler(services.Seller, cfg)

	amazon := r.Group("/api/amazon")
	amazon.GET("/callback", amazonHandler.HandleCallback)

	protected := amazon.Group("", middleware.AuthMiddleware(services.Token, blacklistRepo))
	protected.GET("/auth-url", amazonHandler.GetAuthURL)
	protected.POST("/refresh-token/:sellerId", amazonHandler.RefreshSellerToken)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
