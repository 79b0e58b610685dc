package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

func RegisterHealth(api *echo.Group) {
	api.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, usecase.MessageOutput{Message: "ShopkeeperMarketplace backend is running!"})
	})
}
