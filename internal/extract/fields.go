package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/htmldoc"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/pkg/models"
)

// Clock supplies the extraction time used when a match date cannot be
// parsed. Injectable for tests.
type Clock func() time.Time

var gameModeCascade = []Lookup{
	ByClass("game-mode", "div"),
	ByClassFragment("game-mode", "div", "span"),
	ByClassFragment("mode", "div", "span"),
	ByClassFragment("playlist", "div", "span"),
	ByClassFragment("type", "div", "span"),
	// Sometimes the mode only appears in a page header.
	BySelector("h1, h2, h3"),
}

// GameMode scans the document for a recognizable game mode and defaults to
// deathmatch when none of the candidates mention one.
func GameMode(doc *goquery.Document) models.GameMode {
	mode := models.GameModeDeathmatch
	scanTexts(doc.Selection, gameModeCascade, func(text string) bool {
		m, ok := matchGameMode(text)
		if ok {
			mode = m
		}
		return ok
	})
	return mode
}

func matchGameMode(text string) (models.GameMode, bool) {
	text = lowered(text)
	for _, mode := range models.GameModes() {
		if strings.Contains(text, string(mode)) {
			return mode, true
		}
	}
	return "", false
}

var mapCascade = []Lookup{
	ByClass("map-name", "div"),
	ByClassFragment("map", "div", "span"),
	ByClassFragment("location", "div", "span"),
}

// Map scans the document for a known map name and defaults to ascent.
func Map(doc *goquery.Document) models.MapName {
	name := models.MapAscent
	scanTexts(doc.Selection, mapCascade, func(text string) bool {
		m, ok := matchMapName(text)
		if ok {
			name = m
		}
		return ok
	})
	return name
}

func matchMapName(text string) (models.MapName, bool) {
	text = lowered(text)
	for _, name := range models.MapNames() {
		if strings.Contains(text, string(name)) {
			return name, true
		}
	}
	return "", false
}

var durationCascade = []Lookup{
	ByClass("duration", "div"),
	ByClassFragment("duration", "div", "span"),
}

// Duration returns the match duration in seconds, 0 when absent or
// malformed.
func Duration(doc *goquery.Document) int {
	text, ok := FirstText(doc.Selection, durationCascade...)
	if !ok {
		return 0
	}
	return ParseDuration(text)
}

// ParseDuration converts "MM:SS" or "HH:MM:SS" to seconds. Any malformed
// string yields 0.
func ParseDuration(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

var dateCascade = []Lookup{
	ByClass("match-date", "div"),
	ByClassFragment("date", "div", "span"),
}

// Date returns the match date, falling back to the clock's current time when
// the page carries no parseable date.
func Date(doc *goquery.Document, now Clock) time.Time {
	text, ok := FirstText(doc.Selection, dateCascade...)
	if !ok {
		return now()
	}
	return ParseDate(text, now)
}

// dateFormats is tried in priority order; the first format that parses wins.
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
}

// ParseDate parses a date string against the fixed format list, returning
// the clock's current time when every format fails.
func ParseDate(s string, now Clock) time.Time {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return now()
}

// Scores finds the team score pair and derives the winner. Anything other
// than two parseable score nodes yields 0-0 and an "Unknown" winner.
func Scores(doc *goquery.Document) (red, blue int, winner string) {
	nodes := htmldoc.FindClass(doc.Selection, "score", "div")
	if nodes.Length() < 2 {
		return 0, 0, "Unknown"
	}

	redText := htmldoc.Text(nodes.Eq(0))
	blueText := htmldoc.Text(nodes.Eq(1))
	red, redErr := strconv.Atoi(redText)
	blue, blueErr := strconv.Atoi(blueText)
	if redErr != nil || blueErr != nil {
		return 0, 0, "Unknown"
	}

	return red, blue, models.Winner(red, blue)
}

// IntStat extracts a non-negative integer stat from a player node, trying
// each class fragment in order. Missing or unparseable stats yield def.
func IntStat(root *goquery.Selection, def int, fragments ...string) int {
	for _, fragment := range fragments {
		value := def
		found := false
		htmldoc.FindClassContains(root, fragment, "div", "span", "td").
			EachWithBreak(func(_ int, s *goquery.Selection) bool {
				n, err := strconv.Atoi(htmldoc.Text(s))
				if err != nil {
					return true
				}
				value = n
				found = true
				return false
			})
		if found {
			return value
		}
	}
	return def
}
