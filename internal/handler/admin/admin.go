package admin

import (
	"net/http"
	"strconv"

	"todo-app/internal/api"
	"todo-app/internal/database"
	"todo-app/internal/middleware"
	"todo-app/internal/service"
	"todo-app/internal/store"
	"todo-app/internal/worker"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

var (
	listAllTodos   = store.ListAllTodos
	deleteTodoByID = store.DeleteTodoByID
)

// @Summary     List every todo
// @Description 管理端：列出所有使用者的待辦事項，不做擁有權過濾
// @Tags        admin
// @Produce     json
// @Success     200 {array} api.TodoResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/todo [get]
func ListAllTodosHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		todos, err := listAllTodos(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.TodoResponse, 0, len(todos))
		for _, t := range todos {
			resp = append(resp, api.TodoResponse{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Priority:    t.Priority,
				Complete:    t.Complete,
				UserID:      t.UserID,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Delete any todo
// @Description 管理端：依 ID 刪除任一使用者的待辦事項，並以背景工作記錄審計日誌
// @Tags        admin
// @Param       id path int true "Todo ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/todo/delete/{id} [delete]
func DeleteAnyTodoHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid todo ID"})
		}

		if err := deleteTodoByID(c.Request().Context(), db, id); err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Todo Not Found"})
		}

		if claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims); ok {
			adminName := claims.Subject
			wp.Submit(func() {
				log.WithFields(log.Fields{
					"admin":   adminName,
					"todo_id": id,
				}).Info("todo deleted by admin")
			})
		}

		return c.NoContent(http.StatusNoContent)
	}
}
