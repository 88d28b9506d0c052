package router

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/adapter/api/handler"
	"ewastex/internal/adapter/api/middleware"
)

func SetupEwasteRouter(e *echo.Echo, listingHandler *handler.ListingHandler, donationHandler *handler.DonationHandler, dashboardHandler *handler.DashboardHandler, walletMiddleware *middleware.WalletMiddleware) {
	// Public reads; specific routes registered before the :id parameter.
	ewaste := e.Group("/v1/ewaste")
	ewaste.GET("/impact-stats", dashboardHandler.ImpactStats)
	ewaste.GET("/all", listingHandler.ListListings)
	ewaste.GET("/:id", listingHandler.GetListing)

	authed := e.Group("/v1/ewaste")
	authed.Use(walletMiddleware.Authenticate)
	authed.GET("/user-posts", listingHandler.ListUserPosts)
	authed.POST("/create", listingHandler.CreateListing)
	authed.DELETE("/:id", listingHandler.DeleteListing)
	authed.PATCH("/:id/status", listingHandler.UpdateStatus)

	authed.POST("/:id/donation-request", donationHandler.CreateRequest)
	authed.GET("/:id/donation-requests", donationHandler.ListRequests)
	authed.POST("/donation-request/:requestId/accept", donationHandler.AcceptRequest)
}
