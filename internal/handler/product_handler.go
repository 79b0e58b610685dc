package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 件数はヘッダで返す（bodyは配列のまま）
const headerTotalCount = "X-Total-Count"

// /products の公開API + ショップ用API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type productRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	Stock         int64  `json:"stock"`
	SubcategoryID int64  `json:"subcategory_id"`
	ImageURL      string `json:"image_url"`
}

func (r productRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Stock:         r.Stock,
		SubcategoryID: r.SubcategoryID,
		ImageURL:      r.ImageURL,
	}
}

// 商品のルートを登録
func (h *ProductHandler) RegisterRoutes(api *echo.Group, auth, shopkeeperOnly echo.MiddlewareFunc) {
	g := api.Group("/products")
	g.GET("", h.list)
	g.GET("/search/:query", h.search)
	g.GET("/shop/:shopkeeper_id", h.byShop)
	g.GET("/category/:category_id", h.byCategory)
	g.GET("/my/products", h.myProducts, auth, shopkeeperOnly)
	g.GET("/:id", h.detail)

	g.POST("", h.create, auth, shopkeeperOnly)
	g.PUT("/:id", h.update, auth, shopkeeperOnly)
	g.DELETE("/:id", h.delete, auth, shopkeeperOnly)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page / limit（なければ全件）
	page := 0
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Page:  page,
		Limit: limit,
		Q:     c.QueryParam("q"),
		Sort:  c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(out.Total, 10))
	return c.JSON(http.StatusOK, out.Items)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) byShop(c echo.Context) error {
	id, ok := paramID(c, "shopkeeper_id")
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.ListByShop(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) byCategory(c echo.Context) error {
	id, ok := paramID(c, "category_id")
	if !ok {
		return invalidID(c)
	}

	out, err := h.uc.ListByCategory(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) search(c echo.Context) error {
	out, err := h.uc.Search(c.Request().Context(), c.Param("query"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) myProducts(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	out, err := h.uc.ListByShop(c.Request().Context(), p.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), p.UserID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.uc.Update(c.Request().Context(), p.UserID, id, req.toInput()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, usecase.MessageOutput{Message: "Product updated successfully"})
}

func (h *ProductHandler) delete(c echo.Context) error {
	p, ok := getPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.uc.Delete(c.Request().Context(), p.UserID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, usecase.MessageOutput{Message: "Product deleted successfully"})
}
