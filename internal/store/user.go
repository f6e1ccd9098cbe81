package store

import (
	"context"
	"fmt"

	"todo-app/internal/database"
	"todo-app/internal/model"
)

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, email, first_name, last_name, hashed_password, phone_number, role, is_active
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.HashedPassword,
		&u.PhoneNumber,
		&u.Role,
		&u.IsActive,
	); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, db database.DB, username string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, email, first_name, last_name, hashed_password, phone_number, role, is_active
		 FROM users WHERE username = $1`,
		username,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.HashedPassword,
		&u.PhoneNumber,
		&u.Role,
		&u.IsActive,
	); err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, first_name, last_name, hashed_password, phone_number, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		u.Username,
		u.Email,
		u.FirstName,
		u.LastName,
		u.HashedPassword,
		u.PhoneNumber,
		u.Role,
		u.IsActive,
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int, hashedPassword string) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET hashed_password = $1
		 WHERE id = $2`,
		hashedPassword,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	return nil
}

func UpdateUserPhoneNumber(ctx context.Context, db database.DB, userID int, phoneNumber string) error {
	_, err := db.Exec(ctx,
		`UPDATE users
		 SET phone_number = $1
		 WHERE id = $2`,
		phoneNumber,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPhoneNumber: %w", err)
	}
	return nil
}
