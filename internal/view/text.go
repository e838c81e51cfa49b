package view

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips editor markup from backend text fields and collapses
// whitespace. Values without markup are only whitespace-normalized.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	// Block elements would otherwise glue adjacent words together.
	doc.Find("br, p, div, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return collapse(doc.Text())
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
