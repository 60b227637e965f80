package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"blogfront/internal/fetcher"
	"blogfront/internal/logger"
	"blogfront/internal/models"
	"blogfront/internal/pages"
	"blogfront/internal/render"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	pageList = "list"
	pagePost = "post"
)

// Server хранит зависимости HTTP-обработчиков: источник ленты,
// сборщик страниц, шаблоны и метрики.
type Server struct {
	source    fetcher.Source
	builder   *pages.Builder
	renderer  *render.Renderer
	metrics   *Metrics
	siteTitle string
}

// NewServer создаёт новый экземпляр Server. metrics может быть nil.
func NewServer(source fetcher.Source, builder *pages.Builder, renderer *render.Renderer, metrics *Metrics, siteTitle string) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Server{
		source:    source,
		builder:   builder,
		renderer:  renderer,
		metrics:   metrics,
		siteTitle: siteTitle,
	}
}

// Routes собирает маршрутизатор со всеми страницами и служебными точками.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/", s.ListPage)
	r.Get("/index.html", s.ListPage)
	r.Get("/"+pages.DetailPath, s.PostPage)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	assets := http.StripPrefix("/assets/", http.FileServer(http.FS(render.Assets())))
	r.Handle("/assets/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		assets.ServeHTTP(w, r)
	}))

	return r
}

// HealthCheck отвечает 200 OK.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

// ListPage отдаёт страницу списка записей для ?page=N.
func (s *Server) ListPage(w http.ResponseWriter, r *http.Request) {
	page := pages.ParsePage(r.URL.Query().Get("page"))

	view := render.ListView{SiteTitle: s.siteTitle}
	status := http.StatusOK

	posts, err := s.loadFeed(r.Context())
	if err != nil {
		view.Message = pages.Message(err, false)
		status = statusFor(err)
	} else {
		list := s.builder.BuildList(posts, page)
		view.List = &list
		if page > 1 {
			view.PageTitle = "Page " + strconv.Itoa(page)
		}
	}

	body, err := s.renderer.List(view)
	if err != nil {
		s.renderFailed(w, r, pageList, err)
		return
	}
	s.writeHTML(w, r, pageList, status, body)
}

// PostPage отдаёт страницу одной записи для ?id=N.
// Некорректный id отклоняется до обращения к ленте.
func (s *Server) PostPage(w http.ResponseWriter, r *http.Request) {
	view := render.PostView{SiteTitle: s.siteTitle}

	detail, err := s.lookupPost(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		view.Message = pages.Message(err, true)
	} else {
		view.Post = &detail
		view.PageTitle = detail.Title
	}

	body, renderErr := s.renderer.Post(view)
	if renderErr != nil {
		s.renderFailed(w, r, pagePost, renderErr)
		return
	}
	s.writeHTML(w, r, pagePost, statusFor(err), body)
}

func (s *Server) lookupPost(ctx context.Context, rawID string) (pages.DetailPage, error) {
	id, err := pages.ParseID(rawID)
	if err != nil {
		return pages.DetailPage{}, err
	}

	posts, err := s.loadFeed(ctx)
	if err != nil {
		return pages.DetailPage{}, err
	}
	return s.builder.BuildDetail(posts, id)
}

func (s *Server) loadFeed(ctx context.Context) ([]models.Post, error) {
	started := time.Now()
	posts, err := s.source.Load(ctx)
	s.metrics.observeFeed(s.source.Name(), started, err)

	if err != nil {
		logger.Log.WithError(err).WithFields(logger.Fields{
			"source":     s.source.Name(),
			"request_id": RequestID(ctx),
		}).Error("Failed to load feed")
		if !errors.Is(err, fetcher.ErrFeedUnavailable) {
			err = errors.Join(fetcher.ErrFeedUnavailable, err)
		}
		return nil, err
	}
	return posts, nil
}

func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, page string, status int, body []byte) {
	etag := render.ETag(body)

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-cache")
	h.Set("ETag", etag)

	if status == http.StatusOK && r.Header.Get("If-None-Match") == etag {
		s.metrics.observeRequest(page, http.StatusNotModified)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	s.metrics.observeRequest(page, status)
	w.WriteHeader(status)
	w.Write(body)
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, page string, err error) {
	logger.Log.WithError(err).WithFields(logger.Fields{
		"page":       page,
		"request_id": RequestID(r.Context()),
	}).Error("Failed to render page")
	s.metrics.observeRequest(page, http.StatusInternalServerError)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, pages.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, pages.ErrPostNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
