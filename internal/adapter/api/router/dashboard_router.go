package router

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/adapter/api/handler"
)

func SetupDashboardRouter(e *echo.Echo, dashboardHandler *handler.DashboardHandler) {
	dashboard := e.Group("/v1/dashboard")
	dashboard.GET("/users", dashboardHandler.Leaderboard)
}
