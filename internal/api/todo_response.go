package api

// swagger:model api.TodoResponse
type TodoResponse struct {
	ID          int    `json:"id" example:"1"`
	Title       string `json:"title" example:"Learn to code!"`
	Description string `json:"description" example:"Need to learn everyday!"`
	Priority    int    `json:"priority" example:"3"`
	Complete    bool   `json:"complete" example:"false"`
	UserID      int    `json:"user_id" example:"1"`
}
