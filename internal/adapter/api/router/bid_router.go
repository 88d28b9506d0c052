package router

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/adapter/api/handler"
	"ewastex/internal/adapter/api/middleware"
)

func SetupBidRouter(e *echo.Echo, bidHandler *handler.BidHandler, walletMiddleware *middleware.WalletMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	bids := e.Group("/v1/bid")
	bids.Use(walletMiddleware.Authenticate)

	// :id is the listing for place/list and the bid for accept.
	bids.GET("/all", bidHandler.ListAllBids)
	bids.POST("/:id/accept", bidHandler.AcceptBid)
	bids.GET("/:id", bidHandler.ListBids)
	bids.POST("/:id", bidHandler.PlaceBid, rateLimitMiddleware.Limit)
}
