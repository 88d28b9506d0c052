package handler

import (
	"github.com/labstack/echo/v4"

	"ewastex/internal/domain/entity"
)

// currentUser returns the user attached by the wallet middleware.
func currentUser(c echo.Context) *entity.User {
	user, _ := c.Get("user").(*entity.User)
	return user
}
