package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type GSTHandler struct {
	uc *usecase.GSTUsecase
}

func NewGSTHandler(uc *usecase.GSTUsecase) *GSTHandler {
	return &GSTHandler{uc: uc}
}

type gstVerifyRequest struct {
	GSTNumber string `json:"gstNumber"`
}

func (h *GSTHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/gst/verify", h.verify)
}

func (h *GSTHandler) verify(c echo.Context) error {
	var req gstVerifyRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Verify(c.Request().Context(), req.GSTNumber)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
