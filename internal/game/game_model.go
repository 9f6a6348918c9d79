package game

import "gorm.io/gorm"

// Game is a sub-round of a match (successive pickup rounds within one outing).
type Game struct {
	gorm.Model
	MatchID uint    `json:"match_id" gorm:"index;not null"`
	Name    *string `json:"name"`
}

// Team belongs to a game. Two per game by convention.
type Team struct {
	gorm.Model
	GameID uint   `json:"game_id" gorm:"index;not null"`
	Name   string `json:"name" gorm:"not null"`
}

// TeamParticipant assigns a match participant to one team of one game and
// carries the per-game event counters. Counters stay nil until recorded and
// count as zero for aggregation.
type TeamParticipant struct {
	gorm.Model
	TeamID             uint  `json:"team_id" gorm:"uniqueIndex:idx_team_mp;not null"`
	MatchParticipantID uint  `json:"match_participant_id" gorm:"uniqueIndex:idx_team_mp;not null"`
	PositionID         *uint `json:"position_id"`
	Goals              *int  `json:"goals"`
	Assists            *int  `json:"assists"`
	Saves              *int  `json:"saves"`
	YellowCards        *int  `json:"yellow_cards"`
	RedCards           *int  `json:"red_cards"`
}

// StatsPatch is the closed set of counters an owner may record on a team
// participant. Nil means "leave unchanged".
type StatsPatch struct {
	Goals       *int  `json:"goals"`
	Assists     *int  `json:"assists"`
	Saves       *int  `json:"saves"`
	YellowCards *int  `json:"yellow_cards"`
	RedCards    *int  `json:"red_cards"`
	PositionID  *uint `json:"position_id"`
}

// Assignments emits the parameterized SET map for the fields actually present.
func (p StatsPatch) Assignments() map[string]interface{} {
	set := make(map[string]interface{})
	if p.Goals != nil {
		set["goals"] = *p.Goals
	}
	if p.Assists != nil {
		set["assists"] = *p.Assists
	}
	if p.Saves != nil {
		set["saves"] = *p.Saves
	}
	if p.YellowCards != nil {
		set["yellow_cards"] = *p.YellowCards
	}
	if p.RedCards != nil {
		set["red_cards"] = *p.RedCards
	}
	if p.PositionID != nil {
		set["position_id"] = *p.PositionID
	}
	return set
}

// Events is a player's per-game event breakdown with nil counters normalized
// to zero.
type Events struct {
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	Saves       int `json:"saves"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
}

// Totals is a team's summed event counters across its participants.
type Totals struct {
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
}

// PlayerLine is one participant's row inside a team summary.
type PlayerLine struct {
	TeamParticipantID  uint   `json:"team_participant_id"`
	MatchParticipantID uint   `json:"match_participant_id"`
	PlayerID           uint   `json:"player_id"`
	Name               string `json:"name"`
	Photo              string `json:"photo"`
	Events             Events `json:"events"`
}

// TeamSummary nests a team's totals and individual lines. Teams without
// participants still appear, with zero totals and an empty player list.
type TeamSummary struct {
	TeamID  uint         `json:"team_id"`
	Name    string       `json:"name"`
	Totals  Totals       `json:"totals"`
	Players []PlayerLine `json:"players"`
}

// GameSummary nests the two team summaries of one game.
type GameSummary struct {
	GameID uint          `json:"game_id"`
	Name   *string       `json:"name"`
	Teams  []TeamSummary `json:"teams"`
}

// MatchSummary is the full per-game breakdown of a match.
type MatchSummary struct {
	MatchID uint          `json:"match_id"`
	Games   []GameSummary `json:"games"`
}
