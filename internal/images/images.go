package images

import (
	"fmt"
	"regexp"
	"strings"
)

// Predicate возвращает true, если адрес картинки нельзя показывать.
type Predicate func(url string) bool

// Blank блокирует отсутствующий или пустой адрес.
func Blank() Predicate {
	return func(url string) bool {
		return strings.TrimSpace(url) == ""
	}
}

// Contains блокирует адреса, содержащие любую из подстрок (без учёта регистра).
func Contains(substrings ...string) Predicate {
	needles := make([]string, 0, len(substrings))
	for _, s := range substrings {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			needles = append(needles, s)
		}
	}
	return func(url string) bool {
		url = strings.ToLower(url)
		for _, n := range needles {
			if strings.Contains(url, n) {
				return true
			}
		}
		return false
	}
}

// Matches блокирует адреса, подходящие под регулярное выражение.
func Matches(re *regexp.Regexp) Predicate {
	return re.MatchString
}

// Filter решает, показывать ли картинку или подставить заглушку.
type Filter struct {
	placeholder string
	rules       []Predicate
}

// NewFilter создаёт фильтр; Blank добавляется всегда.
func NewFilter(placeholder string, rules ...Predicate) *Filter {
	return &Filter{
		placeholder: placeholder,
		rules:       append([]Predicate{Blank()}, rules...),
	}
}

// NewFilterFromConfig собирает фильтр из списков подстрок и регулярных выражений.
func NewFilterFromConfig(placeholder string, substrings, patterns []string) (*Filter, error) {
	rules := []Predicate{Contains(substrings...)}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid image pattern %q: %w", p, err)
		}
		rules = append(rules, Matches(re))
	}
	return NewFilter(placeholder, rules...), nil
}

func (f *Filter) Placeholder() string {
	return f.placeholder
}

// Valid сообщает, можно ли показывать картинку по адресу url.
func (f *Filter) Valid(url string) bool {
	for _, blocked := range f.rules {
		if blocked(url) {
			return false
		}
	}
	return true
}

// Resolve возвращает адрес для src и признак того, что это заглушка.
func (f *Filter) Resolve(url string) (string, bool) {
	if !f.Valid(url) {
		return f.placeholder, true
	}
	return strings.TrimSpace(url), false
}
