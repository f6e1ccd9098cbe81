// File: internal/router/router.go
package router

import (
	"todo-app/internal/cache"
	"todo-app/internal/database"
	"todo-app/internal/handler"
	"todo-app/internal/handler/admin"
	"todo-app/internal/handler/auth"
	"todo-app/internal/handler/todos"
	"todo-app/internal/handler/users"
	"todo-app/internal/middleware"
	"todo-app/internal/service"
	"todo-app/internal/worker"

	"github.com/labstack/echo/v4"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, authSvc *service.Auth, wp worker.Pool) {
	// 健康檢查（免登入）
	e.GET("/healthy", handler.HealthHandler(db, rdb))

	// 註冊、登入與 refresh token 換發
	apiAuth := e.Group("/auth")
	apiAuth.POST("", auth.RegisterHandler(db))
	apiAuth.POST("/", auth.RegisterHandler(db))
	apiAuth.POST("/token", auth.TokenHandler(db, rdb, authSvc))
	apiAuth.POST("/refresh", auth.RefreshHandler(rdb, authSvc))

	// 當前使用者的待辦事項 CRUD
	apiTodos := e.Group("/todos", middleware.RequireAuth(authSvc))
	apiTodos.GET("", todos.ListTodosHandler(db))
	apiTodos.GET("/", todos.ListTodosHandler(db))
	apiTodos.GET("/todo/:id", todos.GetTodoHandler(db))
	apiTodos.POST("/todo/create", todos.CreateTodoHandler(db))
	apiTodos.PUT("/todo/update/:id", todos.UpdateTodoHandler(db))
	apiTodos.DELETE("/todo/delete/:id", todos.DeleteTodoHandler(db))

	// 管理員專屬，非管理員一律 404
	apiAdmin := e.Group("/admin", middleware.RequireAdmin(authSvc))
	apiAdmin.GET("/todo", admin.ListAllTodosHandler(db))
	apiAdmin.DELETE("/todo/delete/:id", admin.DeleteAnyTodoHandler(db, wp))

	// 當前使用者個人資料
	apiUsers := e.Group("/users", middleware.RequireAuth(authSvc))
	apiUsers.GET("/current_user", users.GetCurrentUserHandler(db))
	apiUsers.PUT("/change_password", users.ChangePasswordHandler(db))
	apiUsers.PUT("/update_phone_number", users.UpdatePhoneNumberHandler(db))
}
