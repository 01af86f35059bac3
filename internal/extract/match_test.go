package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/pkg/models"
)

const matchPage = `
<html><body>
	<div class="game-mode">Deathmatch</div>
	<div class="map-name">Breeze</div>
	<div class="duration">12:45</div>
	<div class="match-date">2024-01-15</div>
	<div class="score">40</div>
	<div class="score">38</div>
	<div class="player-stats">
		<div class="player-name">Reyna</div>
		<div class="team">Red</div>
		<div class="kills">40</div>
		<div class="deaths">25</div>
		<div class="assists">1</div>
	</div>
	<div class="player-stats">
		<div class="player-name">Cypher</div>
		<div class="team">Blue</div>
		<div class="kills">38</div>
		<div class="deaths">27</div>
		<div class="assists">2</div>
	</div>
</body></html>`

func TestMatchAssemblesFullRecord(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := mustParse(t, matchPage)

	result, err := Match(doc, "https://tracker.gg/valorant/match/9f3c-1a2b", func() time.Time { return fixed })
	require.NoError(t, err)

	assert.Equal(t, "9f3c-1a2b", result.MatchID)
	assert.Equal(t, "https://tracker.gg/valorant/match/9f3c-1a2b", result.MatchURL)
	assert.Equal(t, models.GameModeDeathmatch, result.GameMode)
	assert.Equal(t, models.MapBreeze, result.MapName)
	assert.Equal(t, 765, result.MatchDuration)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), result.MatchDate)
	assert.Equal(t, 40, result.RedTeamScore)
	assert.Equal(t, 38, result.BlueTeamScore)
	assert.Equal(t, "Red", result.Winner)
	assert.Zero(t, result.TotalRounds)
	assert.Zero(t, result.OvertimeRounds)

	require.Len(t, result.Players, 2)
	assert.Equal(t, "Reyna", result.Players[0].PlayerName)
	assert.InDelta(t, 1.6, result.Players[0].KDRatio, 1e-9)
}

func TestMatchDefaultsWhenFieldsMissing(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := mustParse(t, `
	<table>
		<tr><td>Solo</td><td>30</td><td>22</td><td>0</td></tr>
	</table>`)

	result, err := Match(doc, "https://tracker.gg/valorant/match/x1", func() time.Time { return fixed })
	require.NoError(t, err)

	assert.Equal(t, models.GameModeDeathmatch, result.GameMode)
	assert.Equal(t, models.MapAscent, result.MapName)
	assert.Zero(t, result.MatchDuration)
	assert.Equal(t, fixed, result.MatchDate)
	assert.Zero(t, result.RedTeamScore)
	assert.Zero(t, result.BlueTeamScore)
	assert.Equal(t, "Unknown", result.Winner)
	require.Len(t, result.Players, 1)
	assert.Equal(t, "Solo", result.Players[0].PlayerName)
}

func TestMatchFailsWithoutPlayers(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="score">1</div><div class="score">2</div></body></html>`)

	result, err := Match(doc, "https://tracker.gg/valorant/match/x1", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoPlayers)
}

func TestMatchID(t *testing.T) {
	assert.Equal(t, "abc-123", MatchID("https://tracker.gg/valorant/match/abc-123"))
	assert.Equal(t, "abc-123", MatchID("https://tracker.gg/valorant/match/abc-123/"))
	assert.Equal(t, "abc-123", MatchID("https://tracker.gg/valorant/match/abc-123?tab=overview"))
	assert.Equal(t, "unknown", MatchID(""))
	assert.Equal(t, "unknown", MatchID("abc123"))
}
