package router

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/adapter/api/handler"
	"ewastex/internal/adapter/api/middleware"
)

type Handlers struct {
	Listing   *handler.ListingHandler
	Bid       *handler.BidHandler
	Donation  *handler.DonationHandler
	Dashboard *handler.DashboardHandler
	Auth      *handler.AuthHandler
}

func Setup(e *echo.Echo, h Handlers, walletMiddleware *middleware.WalletMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	e.GET("/health", handler.HealthCheck)

	SetupAuthRouter(e, h.Auth, walletMiddleware)
	SetupEwasteRouter(e, h.Listing, h.Donation, h.Dashboard, walletMiddleware)
	SetupBidRouter(e, h.Bid, walletMiddleware, rateLimitMiddleware)
	SetupDashboardRouter(e, h.Dashboard)
}
