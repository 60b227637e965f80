package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"html/template"
	"io/fs"

	"blogfront/internal/pages"

	"github.com/cespare/xxhash/v2"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

const (
	ListTemplate = "list.html"
	PostTemplate = "post.html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// Assets - статические файлы (заглушка картинки, стили), корень - каталог assets.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to open embedded assets: %v", err))
	}
	return sub
}

// ListView - данные страницы списка. Message заменяет карточки при ошибке.
type ListView struct {
	SiteTitle string
	PageTitle string
	List      *pages.ListPage
	Message   string
}

// PostView - данные страницы записи. Message заменяет запись при ошибке.
type PostView struct {
	SiteTitle string
	PageTitle string
	Post      *pages.DetailPage
	Message   string
}

type Renderer struct {
	templates map[string]*template.Template
	minifier  *minify.M
}

// New разбирает встроенные шаблоны. При minifyHTML ответы сжимаются.
func New(minifyHTML bool) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, 2)}

	for _, name := range []string{ListTemplate, PostTemplate} {
		t, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}

	if minifyHTML {
		m := minify.New()
		m.AddFunc("text/css", css.Minify)
		m.AddFunc("text/html", html.Minify)
		r.minifier = m
	}
	return r, nil
}

func (r *Renderer) List(v ListView) ([]byte, error) {
	return r.render(ListTemplate, v)
}

func (r *Renderer) Post(v PostView) ([]byte, error) {
	return r.render(PostTemplate, v)
}

func (r *Renderer) render(name string, data any) ([]byte, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %s", name)
	}

	buf := bytes.Buffer{}
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	if r.minifier == nil {
		return buf.Bytes(), nil
	}

	b, err := r.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to minify %s: %w", name, err)
	}
	return b, nil
}

// ETag - сильный валидатор тела ответа на основе xxhash.
func ETag(body []byte) string {
	d := make([]byte, 8)
	binary.BigEndian.PutUint64(d, xxhash.Sum64(body))
	return "\"" + base64.StdEncoding.EncodeToString(d) + "\""
}
