package router

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/adapter/api/handler"
	"ewastex/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, walletMiddleware *middleware.WalletMiddleware) {
	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.GET("/me", authHandler.Me, walletMiddleware.Authenticate)
}
