package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// 測試用替換點
var pgxpoolNew = pgxpool.New

// NewPgxPool 建立資料庫連線池
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
