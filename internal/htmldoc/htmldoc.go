// Package htmldoc wraps goquery parsing behind a small set of lookup helpers
// used by the extraction cascades: exact class-token matches, class-substring
// matches and whitespace-normalized text.
package htmldoc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse turns raw page markup into a queryable document. Parsing is
// best-effort recovery: malformed markup still yields a document.
func Parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return doc, nil
}

// FindClass returns the nodes under root whose class attribute contains the
// exact class token, restricted to the given tags.
func FindClass(root *goquery.Selection, class string, tags ...string) *goquery.Selection {
	return root.Find(strings.Join(tags, ", ")).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	})
}

// FindClassContains returns the nodes under root whose class attribute
// contains the given fragment anywhere, restricted to the given tags.
func FindClassContains(root *goquery.Selection, fragment string, tags ...string) *goquery.Selection {
	selectors := make([]string, len(tags))
	for i, tag := range tags {
		selectors[i] = fmt.Sprintf(`%s[class*=%q]`, tag, fragment)
	}
	return root.Find(strings.Join(selectors, ", "))
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// Text returns the trimmed, whitespace-collapsed text of the first node in
// the selection.
func Text(sel *goquery.Selection) string {
	text := strings.TrimSpace(sel.First().Text())
	return innerWhitespace.ReplaceAllString(text, " ")
}
