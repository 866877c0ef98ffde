package services

import (
	portsrepo "github.com/sellerpulse/auth-backend/internal/core/ports/repositories"
	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, emailSender portssvc.EmailSender) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg)
	container.OTP = NewOTPService()
	container.Email = emailSender

	container.Auth = NewAuthService(
		repos.UserRepo,
		repos.BlacklistRepo,
		container.Token,
		container.OTP,
		container.Email,
	)

	container.Seller = NewSellerTokenService(cfg, repos.SellerTokenRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.AuthSvcFacade       = (*authService)(nil)
	_ portssvc.TokenSvcFacade      = (*tokenService)(nil)
	_ portssvc.OTPSvcFacade        = (*otpService)(nil)
	_ portssvc.SellerAuthSvcFacade = (*sellerTokenService)(nil)
)
