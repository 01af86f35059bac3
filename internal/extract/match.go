package extract

import (
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/pkg/models"
)

// ErrNoPlayers indicates the document parsed but no player structure could
// be located by any strategy.
var ErrNoPlayers = errors.New("no player data found")

// Match assembles a complete match record from one parsed document. It fails
// only when the player list comes back empty; every document-level field has
// a declared default instead.
func Match(doc *goquery.Document, matchURL string, now Clock) (*models.MatchResult, error) {
	if now == nil {
		now = time.Now
	}

	players := Players(doc)
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	red, blue, winner := Scores(doc)

	return &models.MatchResult{
		MatchID:       MatchID(matchURL),
		MatchURL:      matchURL,
		GameMode:      GameMode(doc),
		MapName:       Map(doc),
		MatchDuration: Duration(doc),
		MatchDate:     Date(doc, now),
		RedTeamScore:  red,
		BlueTeamScore: blue,
		Winner:        winner,
		Players:       players,
		// The page does not expose round counts.
		TotalRounds:    0,
		OvertimeRounds: 0,
	}, nil
}

// MatchID is the last path segment of the match URL, or "unknown" when the
// URL carries none.
func MatchID(matchURL string) string {
	trimmed := matchURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.TrimRight(trimmed, "/")

	i := strings.LastIndex(trimmed, "/")
	if i < 0 || i == len(trimmed)-1 {
		return "unknown"
	}
	return trimmed[i+1:]
}
