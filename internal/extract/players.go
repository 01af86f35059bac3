package extract

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/htmldoc"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/pkg/models"
)

// playerContainerClass is the class the page uses for a player's stat card
// when it renders the structured layout.
const playerContainerClass = "player-stats"

// playerClassFragments are the candidate class-name fragments for the
// wildcard search, in priority order.
var playerClassFragments = []string{"player", "stats", "participant", "roster", "team"}

// sectionTags are the tag kinds a player section can be rendered as.
var sectionTags = []string{"div", "tr"}

// headerSentinels are first-cell values that identify a table header row
// rather than a player row.
var headerSentinels = map[string]bool{
	"name":   true,
	"player": true,
}

// locator is one strategy for finding the nodes that each represent one
// player's row or card.
type locator struct {
	name   string
	locate func(doc *goquery.Document) []models.PlayerPerformance
}

// locators returns the strategy cascade in priority order.
func locators() []locator {
	return []locator{
		{name: "exact-container", locate: exactContainers},
		{name: "class-fragment", locate: fragmentContainers},
		{name: "table-rows", locate: tableRows},
	}
}

// Players runs the locator cascade over the document; the first strategy
// that yields at least one parseable record wins. An empty result means the
// page carries no recognizable player structure; no placeholder record is
// synthesized, the caller surfaces the failure.
func Players(doc *goquery.Document) []models.PlayerPerformance {
	for _, l := range locators() {
		players := l.locate(doc)
		if len(players) > 0 {
			slog.Debug("located players", "strategy", l.name, "count", len(players))
			return players
		}
	}
	return nil
}

func exactContainers(doc *goquery.Document) []models.PlayerPerformance {
	var players []models.PlayerPerformance
	htmldoc.FindClass(doc.Selection, playerContainerClass, "div").
		Each(func(_ int, s *goquery.Selection) {
			if p, ok := parseContainer(s); ok {
				players = append(players, p)
			}
		})
	return players
}

// fragmentContainers tries every class fragment across every section tag and
// keeps the union of parseable records. Deduplication is by DOM node, not by
// player name, so a node matching several fragments is parsed once while
// distinct players sharing a display name each keep their record.
func fragmentContainers(doc *goquery.Document) []models.PlayerPerformance {
	var players []models.PlayerPerformance
	seen := make(map[*html.Node]bool)

	for _, fragment := range playerClassFragments {
		htmldoc.FindClassContains(doc.Selection, fragment, sectionTags...).
			Each(func(_ int, s *goquery.Selection) {
				node := s.Nodes[0]
				if seen[node] {
					return
				}
				seen[node] = true
				if p, ok := parseContainer(s); ok {
					players = append(players, p)
				}
			})
	}
	return players
}

// parseContainer pulls one player record out of a candidate node. A node
// without a name element is not a player section; stat fields missing from
// the node fall back to 0.
func parseContainer(s *goquery.Selection) (models.PlayerPerformance, bool) {
	nameNodes := htmldoc.FindClassContains(s, "name", "div", "span", "td")
	if nameNodes.Length() == 0 {
		return models.PlayerPerformance{}, false
	}
	name := htmldoc.Text(nameNodes)
	if name == "" {
		return models.PlayerPerformance{}, false
	}

	team := "Red"
	if t := htmldoc.Text(htmldoc.FindClassContains(s, "team", "div", "span", "td")); t != "" {
		team = t
	}

	p := models.PlayerPerformance{
		PlayerName:  name,
		Team:        team,
		Kills:       IntStat(s, 0, "kills", "kill"),
		Deaths:      IntStat(s, 0, "deaths", "death"),
		Assists:     IntStat(s, 0, "assists", "assist"),
		Score:       IntStat(s, 0, "score"),
		Headshots:   IntStat(s, 0, "headshots", "headshot"),
		DamageDealt: IntStat(s, 0, "damage-dealt"),
		DamageTaken: IntStat(s, 0, "damage-taken"),
	}
	p.RecomputeDerived()
	return p, true
}

// tableRows is the last resort: any table whose rows have at least 3 cells
// is read positionally as name, kills, deaths, assists, score.
func tableRows(doc *goquery.Document) []models.PlayerPerformance {
	var players []models.PlayerPerformance

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if p, ok := parseTableRow(row); ok {
				players = append(players, p)
			}
		})
	})
	return players
}

func parseTableRow(row *goquery.Selection) (models.PlayerPerformance, bool) {
	cells := row.Find("td, th")
	if cells.Length() < 3 {
		return models.PlayerPerformance{}, false
	}

	name := htmldoc.Text(cells.Eq(0))
	if name == "" || headerSentinels[strings.ToLower(name)] {
		return models.PlayerPerformance{}, false
	}

	stats := make([]int, 0, cells.Length()-1)
	cells.Slice(1, cells.Length()).Each(func(_ int, cell *goquery.Selection) {
		n, err := strconv.Atoi(htmldoc.Text(cell))
		if err != nil {
			n = 0
		}
		stats = append(stats, n)
	})

	statAt := func(i int) int {
		if i < len(stats) {
			return stats[i]
		}
		return 0
	}

	p := models.PlayerPerformance{
		PlayerName: name,
		Team:       "Red",
		Kills:      statAt(0),
		Deaths:     statAt(1),
		Assists:    statAt(2),
		Score:      statAt(3),
	}
	p.RecomputeDerived()
	return p, true
}
