// Package dates разбирает даты публикаций во всех форматах, которые
// встречались в ленте: ISO, выгрузка из таблицы ("December 09, 2025 at 1:05PM")
// и RFC1123.
package dates

import (
	"slices"
	"strings"
	"time"

	"blogfront/internal/models"
)

const DisplayLayout = "2006-01-02"

// DefaultLayouts перебираются по порядку, выигрывает первый подошедший.
var DefaultLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07",
	"2006-01-02",
	"January 2, 2006 at 3:04PM",
	"January 2, 2006 at 3:04 PM",
	"January 2, 2006 at 3:04pm",
	"Jan 2, 2006 at 3:04PM",
	"January 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
}

type Parser struct {
	layouts []string
	loc     *time.Location
}

// NewParser создаёт парсер. Даты без смещения читаются в loc (nil - UTC).
// Без layouts используется DefaultLayouts.
func NewParser(loc *time.Location, layouts ...string) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	return &Parser{layouts: layouts, loc: loc}
}

// Parse возвращает момент времени и false, если строка пустая
// или не подходит ни под один формат.
func (p *Parser) Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range p.layouts {
		if t, err := time.ParseInLocation(layout, value, p.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// Format возвращает YYYY-MM-DD, а если дату не разобрать - исходную строку.
func (p *Parser) Format(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	t, ok := p.Parse(value)
	if !ok {
		return value
	}
	return t.In(p.loc).Format(DisplayLayout)
}

// SortKey - ключ сортировки; неразобранная дата даёт нулевое время,
// то есть считается самой старой.
func (p *Parser) SortKey(value string) time.Time {
	t, _ := p.Parse(value)
	return t
}

// SortDescending возвращает копию posts, упорядоченную от новых к старым.
// Записи с равными ключами сохраняют исходный порядок.
func (p *Parser) SortDescending(posts []models.Post) []models.Post {
	keys := make(map[string]time.Time, len(posts))
	key := func(date string) time.Time {
		if t, ok := keys[date]; ok {
			return t
		}
		t := p.SortKey(date)
		keys[date] = t
		return t
	}

	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b models.Post) int {
		return key(b.Date).Compare(key(a.Date))
	})
	return sorted
}
