package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ewastex/internal/domain/repository"
	"ewastex/pkg/response"
)

// WalletMiddleware resolves the wallet address carried in the
// Authorization header to a known user. The address itself is treated as
// an opaque authenticated identity; validating that it belongs to the
// caller is the identity provider's job, not ours.
type WalletMiddleware struct {
	userRepo repository.UserRepository
}

func NewWalletMiddleware(userRepo repository.UserRepository) *WalletMiddleware {
	return &WalletMiddleware{
		userRepo: userRepo,
	}
}

func (m *WalletMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		walletAddress := c.Request().Header.Get("Authorization")
		if walletAddress == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "No wallet address provided")
		}

		user, err := m.userRepo.GetByWalletAddress(c.Request().Context(), walletAddress)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set("user", user)

		return next(c)
	}
}
