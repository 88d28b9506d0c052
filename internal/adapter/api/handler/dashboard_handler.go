package handler

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/usecase"
	"ewastex/pkg/response"
)

type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
	}
}

func (h *DashboardHandler) ImpactStats(c echo.Context) error {
	stats, err := h.dashboardUseCase.ImpactStats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"stats": stats,
	})
}

func (h *DashboardHandler) Leaderboard(c echo.Context) error {
	users, err := h.dashboardUseCase.Leaderboard(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"users": users,
	})
}
