package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardMarkup = `
<div class="scoreboard">
	<div class="player-stats">
		<div class="player-name">Phantom</div>
		<div class="team">Blue</div>
		<div class="kills">24</div>
		<div class="deaths">12</div>
		<div class="assists">3</div>
		<div class="score">6100</div>
		<div class="headshots">12</div>
	</div>
	<div class="player-stats">
		<div class="player-name">Vandal</div>
		<div class="team">Red</div>
		<div class="kills">18</div>
		<div class="deaths">0</div>
		<div class="assists">5</div>
		<div class="score">4800</div>
	</div>
</div>`

func TestPlayersExactContainers(t *testing.T) {
	doc := mustParse(t, cardMarkup)

	players := Players(doc)
	require.Len(t, players, 2)

	assert.Equal(t, "Phantom", players[0].PlayerName)
	assert.Equal(t, "Blue", players[0].Team)
	assert.Equal(t, 24, players[0].Kills)
	assert.Equal(t, 12, players[0].Deaths)
	assert.Equal(t, 3, players[0].Assists)
	assert.Equal(t, 6100, players[0].Score)
	assert.Equal(t, 12, players[0].Headshots)
	assert.InDelta(t, 2.0, players[0].KDRatio, 1e-9)
	assert.InDelta(t, 50.0, players[0].HeadshotPercentage, 1e-9)

	assert.Equal(t, "Vandal", players[1].PlayerName)
	assert.InDelta(t, 18.0, players[1].KDRatio, 1e-9, "deathless player keeps kill count as ratio")
}

func TestPlayersFragmentFallback(t *testing.T) {
	doc := mustParse(t, `
	<div class="match-roster-entry">
		<span class="entry-name">Sova</span>
		<span class="kills-stat">10</span>
		<span class="deaths-stat">4</span>
	</div>
	<div class="match-roster-entry">
		<span class="entry-name">Jett</span>
		<span class="kills-stat">16</span>
		<span class="deaths-stat">8</span>
	</div>`)

	players := Players(doc)
	require.Len(t, players, 2)

	assert.Equal(t, "Sova", players[0].PlayerName)
	assert.Equal(t, "Red", players[0].Team, "team defaults when the section has none")
	assert.Equal(t, 10, players[0].Kills)
	assert.Equal(t, 4, players[0].Deaths)
	assert.Equal(t, "Jett", players[1].PlayerName)
}

func TestPlayersFragmentUnionDeduplicates(t *testing.T) {
	// The card class matches both the "player" and "stats" fragments; the
	// record must appear once.
	doc := mustParse(t, `
	<div class="player-stats-card">
		<span class="entry-name">Omen</span>
		<span class="kills-count">7</span>
	</div>`)

	players := Players(doc)
	require.Len(t, players, 1)
	assert.Equal(t, "Omen", players[0].PlayerName)
}

func TestPlayersSharedDisplayNameKeepsBothRecords(t *testing.T) {
	// Dedupe is per DOM node; two distinct sections that happen to share a
	// display name are separate stat lines.
	doc := mustParse(t, `
	<div class="match-roster-entry">
		<span class="entry-name">Smurf</span>
		<span class="kills-stat">10</span>
		<span class="deaths-stat">4</span>
	</div>
	<div class="match-roster-entry">
		<span class="entry-name">Smurf</span>
		<span class="kills-stat">2</span>
		<span class="deaths-stat">9</span>
	</div>`)

	players := Players(doc)
	require.Len(t, players, 2)
	assert.Equal(t, "Smurf", players[0].PlayerName)
	assert.Equal(t, 10, players[0].Kills)
	assert.Equal(t, "Smurf", players[1].PlayerName)
	assert.Equal(t, 2, players[1].Kills)
	assert.Equal(t, 9, players[1].Deaths)
}

func TestPlayersTableFallback(t *testing.T) {
	doc := mustParse(t, `
	<table>
		<tr><th>Name</th><th>K</th><th>D</th><th>A</th><th>Score</th></tr>
		<tr><td>Raze</td><td>22</td><td>11</td><td>2</td><td>5400</td></tr>
		<tr><td>Sage</td><td>9</td><td>13</td><td>8</td><td>3100</td></tr>
		<tr><td></td><td>1</td><td>2</td><td>3</td><td>4</td></tr>
		<tr><td>only two cells</td><td>5</td></tr>
	</table>`)

	players := Players(doc)
	require.Len(t, players, 2, "header row, empty-name row and short row are all skipped")

	assert.Equal(t, "Raze", players[0].PlayerName)
	assert.Equal(t, 22, players[0].Kills)
	assert.Equal(t, 11, players[0].Deaths)
	assert.Equal(t, 2, players[0].Assists)
	assert.Equal(t, 5400, players[0].Score)
	assert.InDelta(t, 2.0, players[0].KDRatio, 1e-9)

	assert.Equal(t, "Sage", players[1].PlayerName)
}

func TestPlayersTableRowWithoutScoreColumn(t *testing.T) {
	doc := mustParse(t, `
	<table>
		<tr><td>Breach</td><td>12</td><td>6</td></tr>
	</table>`)

	players := Players(doc)
	require.Len(t, players, 1)
	assert.Equal(t, 12, players[0].Kills)
	assert.Equal(t, 6, players[0].Deaths)
	assert.Zero(t, players[0].Assists)
	assert.Zero(t, players[0].Score)
}

func TestPlayersCascadePriority(t *testing.T) {
	// A structured card and a generic table are both present; the exact
	// container strategy wins and the table is never consulted.
	doc := mustParse(t, cardMarkup+`
	<table>
		<tr><td>TableGhost</td><td>1</td><td>1</td><td>1</td></tr>
	</table>`)

	players := Players(doc)
	require.Len(t, players, 2)
	for _, p := range players {
		assert.NotEqual(t, "TableGhost", p.PlayerName)
	}
}

func TestPlayersNoneFound(t *testing.T) {
	doc := mustParse(t, `<p>page under maintenance</p>`)
	assert.Empty(t, Players(doc), "no placeholder record is synthesized")
}
