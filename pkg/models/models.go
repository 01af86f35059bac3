// Package models defines the value objects produced by a scrape: one match
// record, the per-player stat lines inside it, and the timed outcome wrapper.
package models

import (
	"time"
)

// GameMode is one of the playlists a match can be played in.
type GameMode string

const (
	GameModeDeathmatch  GameMode = "deathmatch"
	GameModeUnrated     GameMode = "unrated"
	GameModeCompetitive GameMode = "competitive"
	GameModeSpikeRush   GameMode = "spike_rush"
	GameModeEscalation  GameMode = "escalation"
	GameModeReplication GameMode = "replication"
	GameModeCustom      GameMode = "custom"
)

// GameModes lists the known game modes in match priority order.
func GameModes() []GameMode {
	return []GameMode{
		GameModeDeathmatch,
		GameModeUnrated,
		GameModeCompetitive,
		GameModeSpikeRush,
		GameModeEscalation,
		GameModeReplication,
		GameModeCustom,
	}
}

// MapName is one of the known maps.
type MapName string

const (
	MapBind     MapName = "bind"
	MapHaven    MapName = "haven"
	MapSplit    MapName = "split"
	MapAscent   MapName = "ascent"
	MapIcebox   MapName = "icebox"
	MapBreeze   MapName = "breeze"
	MapFracture MapName = "fracture"
	MapPearl    MapName = "pearl"
	MapLotus    MapName = "lotus"
	MapSunset   MapName = "sunset"
)

// MapNames lists the known maps in match priority order.
func MapNames() []MapName {
	return []MapName{
		MapBind,
		MapHaven,
		MapSplit,
		MapAscent,
		MapIcebox,
		MapBreeze,
		MapFracture,
		MapPearl,
		MapLotus,
		MapSunset,
	}
}

// PlayerPerformance is one player's stat line for a match. KDRatio and
// HeadshotPercentage are always recomputed from the raw counts; the source
// page does not expose them reliably.
type PlayerPerformance struct {
	PlayerName         string  `json:"player_name"`
	Team               string  `json:"team"`
	Kills              int     `json:"kills"`
	Deaths             int     `json:"deaths"`
	Assists            int     `json:"assists"`
	Score              int     `json:"score"`
	KDRatio            float64 `json:"kd_ratio"`
	Headshots          int     `json:"headshots"`
	HeadshotPercentage float64 `json:"headshot_percentage"`
	DamageDealt        int     `json:"damage_dealt"`
	DamageTaken        int     `json:"damage_taken"`
	UtilityUsed        int     `json:"utility_used"`
	FirstBloods        int     `json:"first_bloods"`
	Clutches           int     `json:"clutches"`
}

// RecomputeDerived overwrites KDRatio and HeadshotPercentage from the raw
// kill, death and headshot counts.
func (p *PlayerPerformance) RecomputeDerived() {
	p.KDRatio = KDRatio(p.Kills, p.Deaths)
	p.HeadshotPercentage = HeadshotPercentage(p.Headshots, p.Kills)
}

// KDRatio is kills divided by deaths, or the kill count itself when the
// player never died.
func KDRatio(kills, deaths int) float64 {
	if deaths > 0 {
		return float64(kills) / float64(deaths)
	}
	return float64(kills)
}

// HeadshotPercentage is the share of kills that were headshots, 0 when the
// player has no kills.
func HeadshotPercentage(headshots, kills int) float64 {
	if kills > 0 {
		return float64(headshots) / float64(kills) * 100
	}
	return 0
}

// Winner labels a score pair: "Red", "Blue" or "Tie".
func Winner(redScore, blueScore int) string {
	switch {
	case redScore > blueScore:
		return "Red"
	case blueScore > redScore:
		return "Blue"
	default:
		return "Tie"
	}
}

// MatchResult is the fully assembled record for one played match.
type MatchResult struct {
	MatchID        string              `json:"match_id"`
	MatchURL       string              `json:"match_url"`
	GameMode       GameMode            `json:"game_mode"`
	MapName        MapName             `json:"map_name"`
	MatchDuration  int                 `json:"match_duration"`
	MatchDate      time.Time           `json:"match_date"`
	RedTeamScore   int                 `json:"red_team_score"`
	BlueTeamScore  int                 `json:"blue_team_score"`
	Winner         string              `json:"winner"`
	Players        []PlayerPerformance `json:"players"`
	TotalRounds    int                 `json:"total_rounds"`
	OvertimeRounds int                 `json:"overtime_rounds"`
}

// ScrapeOutcome is the timed result of one scrape attempt. ErrorMessage is
// populated iff Success is false; ProcessingTime is always populated.
type ScrapeOutcome struct {
	Success        bool         `json:"success"`
	MatchData      *MatchResult `json:"match_data,omitempty"`
	ErrorMessage   string       `json:"error_message,omitempty"`
	ProcessingTime float64      `json:"processing_time"`
}
