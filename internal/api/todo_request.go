// File: internal/api/todo_request.go
package api

// swagger:model api.TodoRequest
type TodoRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100" example:"A new todo"`
	Description string `json:"description" validate:"required,min=1,max=100" example:"A new description of a todo"`
	Priority    int    `json:"priority" validate:"required,gte=1,lte=5" example:"5"`
	Complete    bool   `json:"complete" example:"true"`
}
