package middleware

import (
	"net/http"
	"strings"

	"todo-app/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

func extractClaims(auth *service.Auth, c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not Authenticate")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not Authenticate")
	}
	claims, err := auth.VerifyAccessToken(parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not Authenticate")
	}
	return claims, nil
}

// RequireAuth 驗證 Bearer token 並將 claims 寫入 context
func RequireAuth(auth *service.Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(auth, c)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// RequireAdmin 要求 admin 角色（不分大小寫）
// 非管理員回 404，避免暴露管理端點的存在
func RequireAdmin(auth *service.Auth) echo.MiddlewareFunc {
	requireAuth := RequireAuth(auth)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireAuth(func(c echo.Context) error {
			claims := c.Get(ContextUserKey).(*service.CustomClaims)
			if !claims.IsAdmin() {
				return echo.NewHTTPError(http.StatusNotFound, "Unauthorized")
			}
			return next(c)
		})
	}
}
