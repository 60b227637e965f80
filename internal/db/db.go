package db

import (
	"context"
	"fmt"

	"blogfront/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Database инкапсулирует пул соединений к PostgreSQL.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB создаёт новый пул соединений по connString и возвращает Database.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %v", err)
	}
	return &Database{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (db *Database) Close() {
	db.Pool.Close()
}

// ListPosts читает все записи таблицы posts. Таблица только читается,
// дата хранится строкой в том же виде, что и в JSON-ленте.
func (db *Database) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id::text, title, COALESCE(date::text, ''), COALESCE(image_url, ''), COALESCE(body_html, '')
        FROM posts
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var (
			p  models.Post
			id string
		)
		if err := rows.Scan(&id, &p.Title, &p.Date, &p.ImageURL, &p.BodyHTML); err != nil {
			return nil, err
		}
		p.ID = models.PostID(id)
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}
