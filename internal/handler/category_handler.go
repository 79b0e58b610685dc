package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type nameRequest struct {
	Name string `json:"name"`
}

// 一覧・詳細は公開、作成はショップのみ
func (h *CategoryHandler) RegisterRoutes(api *echo.Group, auth, shopkeeperOnly echo.MiddlewareFunc) {
	g := api.Group("/categories")
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create, auth, shopkeeperOnly)
	g.POST("/:categoryId/subcategories", h.createSubcategory, auth, shopkeeperOnly)
}

func (h *CategoryHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CategoryHandler) createSubcategory(c echo.Context) error {
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return invalidID(c)
	}

	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.CreateSubcategory(c.Request().Context(), categoryID, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
