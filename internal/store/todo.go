package store

import (
	"context"
	"fmt"

	"todo-app/internal/database"
	"todo-app/internal/model"

	"github.com/jackc/pgx/v5"
)

// 擁有權過濾直接寫進 SQL：不存在與非本人持有的 id 一律回 pgx.ErrNoRows，
// 讓呼叫端無從分辨兩者

func ListTodosByUser(ctx context.Context, db database.DB, userID int) ([]model.Todo, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, description, priority, complete, user_id
		 FROM todos WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTodosByUser: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Priority,
			&t.Complete,
			&t.UserID,
		); err != nil {
			return nil, fmt.Errorf("ListTodosByUser: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTodosByUser: %w", err)
	}
	return todos, nil
}

func ListAllTodos(ctx context.Context, db database.DB) ([]model.Todo, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, description, priority, complete, user_id
		 FROM todos`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListAllTodos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Priority,
			&t.Complete,
			&t.UserID,
		); err != nil {
			return nil, fmt.Errorf("ListAllTodos: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAllTodos: %w", err)
	}
	return todos, nil
}

func GetTodoByOwner(ctx context.Context, db database.DB, todoID, userID int) (*model.Todo, error) {
	row := db.QueryRow(ctx,
		`SELECT id, title, description, priority, complete, user_id
		 FROM todos WHERE id = $1 AND user_id = $2`,
		todoID,
		userID,
	)
	t := &model.Todo{}
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.Complete,
		&t.UserID,
	); err != nil {
		return nil, fmt.Errorf("GetTodoByOwner: %w", err)
	}
	return t, nil
}

func CreateTodo(ctx context.Context, db database.DB, t *model.Todo) (*model.Todo, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO todos (title, description, priority, complete, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		t.Title,
		t.Description,
		t.Priority,
		t.Complete,
		t.UserID,
	)
	if err := row.Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("CreateTodo: %w", err)
	}
	return t, nil
}

func UpdateTodoByOwner(ctx context.Context, db database.DB, t *model.Todo) error {
	tag, err := db.Exec(ctx,
		`UPDATE todos SET title = $1, description = $2, priority = $3, complete = $4
		 WHERE id = $5 AND user_id = $6`,
		t.Title,
		t.Description,
		t.Priority,
		t.Complete,
		t.ID,
		t.UserID,
	)
	if err != nil {
		return fmt.Errorf("UpdateTodoByOwner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateTodoByOwner: %w", pgx.ErrNoRows)
	}
	return nil
}

func DeleteTodoByOwner(ctx context.Context, db database.DB, todoID, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`,
		todoID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteTodoByOwner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteTodoByOwner: %w", pgx.ErrNoRows)
	}
	return nil
}

// DeleteTodoByID 不做擁有權過濾，僅供管理端使用
func DeleteTodoByID(ctx context.Context, db database.DB, todoID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM todos WHERE id = $1`,
		todoID,
	)
	if err != nil {
		return fmt.Errorf("DeleteTodoByID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteTodoByID: %w", pgx.ErrNoRows)
	}
	return nil
}
