package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"blogfront/internal/db"
	"blogfront/internal/logger"
	"blogfront/internal/models"
)

// ErrFeedUnavailable оборачивает любую ошибку загрузки или разбора ленты.
var ErrFeedUnavailable = errors.New("feed unavailable")

// Source отдаёт всю ленту записей за один вызов.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Post, error)
}

// HTTPSource делает один GET на адрес ленты и разбирает JSON-массив записей.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource создаёт источник с клиентом, ограниченным timeout (0 - без ограничения).
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Name() string {
	return "http"
}

func (s *HTTPSource) Load(ctx context.Context) ([]models.Post, error) {
	log := logger.Log.WithField("url", s.url)
	log.Debug("Fetching feed")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	posts, err := decode(resp.Body)
	if err != nil {
		return nil, err
	}

	log.WithField("posts_count", len(posts)).Debug("Feed fetched")
	return posts, nil
}

// FileSource читает статический JSON-файл ленты (posts.json).
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) Load(ctx context.Context) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer file.Close()

	return decode(file)
}

// PostgresSource читает ленту из таблицы posts.
type PostgresSource struct {
	db *db.Database
}

func NewPostgresSource(database *db.Database) *PostgresSource {
	return &PostgresSource{db: database}
}

func (s *PostgresSource) Name() string {
	return "postgres"
}

func (s *PostgresSource) Load(ctx context.Context) ([]models.Post, error) {
	posts, err := s.db.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	return posts, nil
}

func (s *PostgresSource) Close() {
	s.db.Close()
}

// NewSource выбирает источник по схеме адреса ленты:
// http(s):// - HTTPSource, postgres:// - таблица posts, иначе - путь к файлу.
func NewSource(ctx context.Context, feedURL string, timeout time.Duration) (Source, error) {
	feedURL = strings.TrimSpace(feedURL)
	lower := strings.ToLower(feedURL)

	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return NewHTTPSource(feedURL, timeout), nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		database, err := db.NewDB(ctx, feedURL)
		if err != nil {
			return nil, err
		}
		return &PostgresSource{db: database}, nil
	default:
		return NewFileSource(strings.TrimPrefix(feedURL, "file://")), nil
	}
}

// decode принимает ровно один JSON-массив записей; null и хвост после массива - ошибка.
func decode(r io.Reader) ([]models.Post, error) {
	dec := json.NewDecoder(r)

	var posts []models.Post
	if err := dec.Decode(&posts); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFeedUnavailable, err)
	}
	if posts == nil {
		return nil, fmt.Errorf("%w: decode: feed is not an array", ErrFeedUnavailable)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: decode: unexpected data after feed", ErrFeedUnavailable)
	}
	return posts, nil
}
