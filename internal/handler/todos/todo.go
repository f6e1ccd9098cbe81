package todos

import (
	"net/http"
	"strconv"

	"todo-app/internal/api"
	"todo-app/internal/database"
	"todo-app/internal/middleware"
	"todo-app/internal/model"
	"todo-app/internal/service"
	"todo-app/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listTodosByUser   = store.ListTodosByUser
	getTodoByOwner    = store.GetTodoByOwner
	createTodo        = store.CreateTodo
	updateTodoByOwner = store.UpdateTodoByOwner
	deleteTodoByOwner = store.DeleteTodoByOwner
)

func toResponse(t model.Todo) api.TodoResponse {
	return api.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		UserID:      t.UserID,
	}
}

// todoID 解析路徑參數，原始行為要求 id > 0
func todoID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid todo ID")
	}
	return id, nil
}

func claimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
	return claims, ok && claims.UserID != 0
}

// @Summary     List own todos
// @Description 回傳當前使用者持有的所有待辦事項
// @Tags        todos
// @Produce     json
// @Success     200 {array} api.TodoResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /todos [get]
func ListTodosHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}

		todos, err := listTodosByUser(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.TodoResponse, 0, len(todos))
		for _, t := range todos {
			resp = append(resp, toResponse(t))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get one of my todos
// @Description 依 ID 查詢待辦事項，僅限本人持有；他人持有與不存在同樣回 404
// @Tags        todos
// @Produce     json
// @Param       id path int true "Todo ID"
// @Success     200 {object} api.TodoResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /todos/todo/{id} [get]
func GetTodoHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}
		id, err := todoID(c)
		if err != nil {
			return err
		}

		todo, err := getTodoByOwner(c.Request().Context(), db, id, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Todo Not Found"})
		}
		return c.JSON(http.StatusOK, toResponse(*todo))
	}
}

// @Summary     Create a todo
// @Description 建立新的待辦事項，持有者為當前使用者
// @Tags        todos
// @Accept      json
// @Produce     json
// @Param       todo body api.TodoRequest true "待辦事項"
// @Success     201 {object} api.TodoResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /todos/todo/create [post]
func CreateTodoHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}

		var req api.TodoRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		todo, err := createTodo(c.Request().Context(), db, &model.Todo{
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			Complete:    req.Complete,
			UserID:      claims.UserID,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toResponse(*todo))
	}
}

// @Summary     Update one of my todos
// @Description 全量更新標題、描述、優先度與完成狀態，僅限本人持有
// @Tags        todos
// @Accept      json
// @Param       id   path int             true "Todo ID"
// @Param       todo body api.TodoRequest true "待辦事項"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /todos/todo/update/{id} [put]
func UpdateTodoHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}
		id, err := todoID(c)
		if err != nil {
			return err
		}

		var req api.TodoRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		if err := updateTodoByOwner(c.Request().Context(), db, &model.Todo{
			ID:          id,
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			Complete:    req.Complete,
			UserID:      claims.UserID,
		}); err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Todo Not Found"})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Delete one of my todos
// @Description 刪除待辦事項，僅限本人持有
// @Tags        todos
// @Param       id path int true "Todo ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /todos/todo/delete/{id} [delete]
func DeleteTodoHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}
		id, err := todoID(c)
		if err != nil {
			return err
		}

		if err := deleteTodoByOwner(c.Request().Context(), db, id, claims.UserID); err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Todo Not Found"})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
