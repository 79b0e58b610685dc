package middleware

import (
	"net/http"

	"marketplace/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextに入っているroleが指定のものか確認します。
// AuthJWTの後ろに置く。
func RoleGuard(role model.Role, deniedMsg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("No token provided"))
			}

			if p.Role != role {
				return c.JSON(http.StatusForbidden, errorJSON(deniedMsg))
			}

			return next(c)
		}
	}
}

func ShopkeeperOnly() echo.MiddlewareFunc {
	return RoleGuard(model.RoleShopkeeper, "Access denied. Shopkeeper only.")
}

func CustomerOnly() echo.MiddlewareFunc {
	return RoleGuard(model.RoleCustomer, "Access denied. Customer only.")
}
