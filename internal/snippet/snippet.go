package snippet

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ellipsis дописывается к обрезанному тексту.
const Ellipsis = "…"

// Text возвращает текстовое содержимое HTML-фрагмента без тегов.
// Фрагмент разбирается внутри <div>, поэтому <title> и <style> в начале
// тела не уезжают в <head> и их текст сохраняется, как в textContent.
// Пробелы не схлопываются.
func Text(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), root)
	if err != nil {
		return fragment
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(root).Text()
}

// Truncate обрезает текст до budget символов и добавляет Ellipsis.
// Текст не длиннее budget возвращается как есть.
func Truncate(text string, budget int) string {
	if budget < 0 {
		budget = 0
	}
	if utf8.RuneCountInString(text) <= budget {
		return text
	}
	runes := []rune(text)
	return string(runes[:budget]) + Ellipsis
}

// FromHTML - текстовое превью тела записи длиной не больше budget+1 символ.
func FromHTML(body string, budget int) string {
	return Truncate(Text(body), budget)
}
