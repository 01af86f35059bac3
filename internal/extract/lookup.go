// Package extract pulls a strict match record out of the source page's
// undocumented, unstable markup. Every field is resolved through an ordered
// cascade of lookup strategies; the first strategy that produces a usable
// value wins, and exhausting a cascade falls back to a declared default.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/htmldoc"
)

// Lookup locates candidate nodes for one field within root. Cascades are
// plain ordered slices of Lookup so the priority of each heuristic is
// explicit and reorderable.
type Lookup func(root *goquery.Selection) *goquery.Selection

// ByClass matches nodes carrying the exact class token, restricted to tags.
func ByClass(class string, tags ...string) Lookup {
	return func(root *goquery.Selection) *goquery.Selection {
		return htmldoc.FindClass(root, class, tags...)
	}
}

// ByClassFragment matches nodes whose class attribute contains fragment.
func ByClassFragment(fragment string, tags ...string) Lookup {
	return func(root *goquery.Selection) *goquery.Selection {
		return htmldoc.FindClassContains(root, fragment, tags...)
	}
}

// BySelector matches nodes by a raw CSS selector.
func BySelector(selector string) Lookup {
	return func(root *goquery.Selection) *goquery.Selection {
		return root.Find(selector)
	}
}

// FirstText runs the cascade in order and returns the text of the first
// non-empty match.
func FirstText(root *goquery.Selection, cascade ...Lookup) (string, bool) {
	var found string
	ok := scanTexts(root, cascade, func(text string) bool {
		found = text
		return true
	})
	return found, ok
}

// scanTexts feeds candidate node texts to visit in cascade order, stopping
// as soon as visit accepts one. Empty texts are skipped.
func scanTexts(root *goquery.Selection, cascade []Lookup, visit func(string) bool) bool {
	for _, lookup := range cascade {
		accepted := false
		lookup(root).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := htmldoc.Text(s)
			if text == "" {
				return true
			}
			if visit(text) {
				accepted = true
				return false
			}
			return true
		})
		if accepted {
			return true
		}
	}
	return false
}

// lowered is a convenience for the substring-containment enum matchers.
func lowered(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
