package pages

import (
	"errors"
	"html/template"
	"math"
	"net/url"
	"strconv"
	"strings"

	"blogfront/internal/dates"
	"blogfront/internal/images"
	"blogfront/internal/models"
	"blogfront/internal/snippet"
)

var (
	ErrInvalidID    = errors.New("invalid post id")
	ErrPostNotFound = errors.New("post not found")
)

// Сообщения, которые видит читатель вместо технических подробностей.
const (
	MsgPostsUnavailable = "Failed to load posts. Please try again later."
	MsgPostUnavailable  = "Failed to load post. Please try again later."
	MsgInvalidID        = "Invalid post ID."
	MsgPostNotFound     = "Post not found."
)

const DetailPath = "post.html"

type Options struct {
	PageSize      int
	SnippetLength int
}

// Builder собирает модели страниц из ленты и параметров запроса.
// Никакого ввода-вывода: только данные на входе и на выходе.
type Builder struct {
	dates  *dates.Parser
	images *images.Filter
	opts   Options
}

func NewBuilder(dp *dates.Parser, filter *images.Filter, opts Options) *Builder {
	if opts.PageSize < 1 {
		opts.PageSize = 1
	}
	if opts.SnippetLength < 0 {
		opts.SnippetLength = 0
	}
	return &Builder{dates: dp, images: filter, opts: opts}
}

type Card struct {
	ID          models.PostID
	Href        string
	Title       string
	Date        string
	Snippet     string
	ImageSrc    string
	Placeholder bool
}

type PageLink struct {
	Number int
	Href   string
	Active bool
}

type ListPage struct {
	Page        int
	TotalPages  int
	TotalPosts  int
	Cards       []Card
	Links       []PageLink
	Placeholder string
}

type DetailPage struct {
	ID          models.PostID
	Title       string
	Date        string
	ImageSrc    string
	HasImage    bool
	Body        template.HTML
	Placeholder string
}

// BuildList сортирует ленту от новых к старым и возвращает страницу page (с 1).
// Страница за пределами ленты получается пустой, но с полным списком ссылок.
func (b *Builder) BuildList(posts []models.Post, page int) ListPage {
	if page < 1 {
		page = 1
	}

	sorted := b.dates.SortDescending(posts)
	window := Window(sorted, page, b.opts.PageSize)

	cards := make([]Card, 0, len(window))
	for _, p := range window {
		src, isPlaceholder := b.images.Resolve(p.ImageURL)
		cards = append(cards, Card{
			ID:          p.ID,
			Href:        PostHref(p.ID),
			Title:       p.Title,
			Date:        b.dates.Format(p.Date),
			Snippet:     snippet.FromHTML(p.BodyHTML, b.opts.SnippetLength),
			ImageSrc:    src,
			Placeholder: isPlaceholder,
		})
	}

	return ListPage{
		Page:        page,
		TotalPages:  TotalPages(len(posts), b.opts.PageSize),
		TotalPosts:  len(posts),
		Cards:       cards,
		Links:       Paginate(len(posts), b.opts.PageSize, page),
		Placeholder: b.images.Placeholder(),
	}
}

// BuildDetail находит запись с числовым идентификатором id.
func (b *Builder) BuildDetail(posts []models.Post, id int64) (DetailPage, error) {
	p, ok := FindPost(posts, id)
	if !ok {
		return DetailPage{}, ErrPostNotFound
	}

	detail := DetailPage{
		ID:          p.ID,
		Title:       p.Title,
		Date:        b.dates.Format(p.Date),
		Body:        template.HTML(p.BodyHTML),
		Placeholder: b.images.Placeholder(),
	}
	if b.images.Valid(p.ImageURL) {
		detail.ImageSrc = strings.TrimSpace(p.ImageURL)
		detail.HasImage = true
	}
	return detail, nil
}

// Window возвращает элементы страницы page размером size.
func Window[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) || start < 0 {
		return nil
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// TotalPages = ceil(count/size), но не меньше 1.
func TotalPages(count, size int) int {
	if size < 1 {
		size = 1
	}
	total := (count + size - 1) / size
	if total < 1 {
		return 1
	}
	return total
}

// Paginate возвращает ссылку на каждую страницу, без сокращений.
func Paginate(count, size, current int) []PageLink {
	total := TotalPages(count, size)
	links := make([]PageLink, 0, total)
	for n := 1; n <= total; n++ {
		links = append(links, PageLink{
			Number: n,
			Href:   "?page=" + strconv.Itoa(n),
			Active: n == current,
		})
	}
	return links
}

func FindPost(posts []models.Post, id int64) (models.Post, bool) {
	for _, p := range posts {
		if n, ok := p.ID.Int(); ok && n == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func PostHref(id models.PostID) string {
	return DetailPath + "?id=" + url.QueryEscape(id.String())
}

// ParsePage разбирает параметр page; всё, что не положительное число, даёт 1.
func ParsePage(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n < 1 || n > math.MaxInt32 {
		return 1
	}
	return int(n)
}

// ParseID разбирает параметр id. Пустой, нечисловой и нулевой id - ErrInvalidID.
func ParseID(raw string) (int64, error) {
	n, ok := parseLeadingInt(raw)
	if !ok || n == 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}

// Message переводит ошибку в текст для читателя. detail выбирает
// формулировку страницы записи.
func Message(err error, detail bool) string {
	switch {
	case errors.Is(err, ErrInvalidID):
		return MsgInvalidID
	case errors.Is(err, ErrPostNotFound):
		return MsgPostNotFound
	case detail:
		return MsgPostUnavailable
	default:
		return MsgPostsUnavailable
	}
}

// parseLeadingInt читает необязательный знак и ведущие цифры,
// как это делают браузеры для параметров ссылок ("3abc" -> 3).
func parseLeadingInt(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(sign+s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
