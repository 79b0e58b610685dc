package server

import (
	"marketplace/internal/handler"
	"marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Shop     *handler.ShopHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	GST      *handler.GSTHandler
}

// 全ルートは /api 配下
func RegisterRoutes(e *echo.Echo, h Handlers, tokens middleware.TokenParser) {
	auth := middleware.AuthJWT(tokens)
	shopkeeperOnly := middleware.ShopkeeperOnly()
	customerOnly := middleware.CustomerOnly()

	api := e.Group("/api")
	handler.RegisterHealth(api)

	h.Auth.RegisterRoutes(api, auth)
	h.Shop.RegisterRoutes(api)
	h.Category.RegisterRoutes(api, auth, shopkeeperOnly)
	h.Product.RegisterRoutes(api, auth, shopkeeperOnly)
	h.Cart.RegisterRoutes(api, auth, customerOnly)
	h.Order.RegisterRoutes(api, auth, shopkeeperOnly, customerOnly)
	h.GST.RegisterRoutes(api)
}
