// File: internal/model/todo.go
package model

type Todo struct {
	ID          int    `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Priority    int    `db:"priority" json:"priority"`
	Complete    bool   `db:"complete" json:"complete"`
	UserID      int    `db:"user_id" json:"user_id"`
}
