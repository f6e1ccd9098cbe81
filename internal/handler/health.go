// File: internal/handler/health.go
package handler

import (
	"net/http"

	"todo-app/internal/api"
	"todo-app/internal/cache"
	"todo-app/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthHandler 健康檢查，確認資料庫與 Redis 連線正常
// @Summary     Health Check
// @Description 回傳 Healthy，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /healthy [get]
func HealthHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := rdb.Ping(c.Request().Context()).Err(); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, api.HealthResponse{Status: "Healthy"})
	}
}
