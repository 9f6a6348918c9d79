package player

import "gorm.io/gorm"

const (
	// KindAccount marks a player backed by a registered user.
	KindAccount = "account"
	// KindExternal marks a guest added by an organizer without an account.
	KindExternal = "external"

	// StatusManual is the annotation for players enrolled without any invite.
	StatusManual = "manual"
)

// Player is a participant-capable identity: either account-backed (one per
// user) or an external guest attributed to the user who added them.
type Player struct {
	gorm.Model
	Kind        string `json:"kind" gorm:"not null"`
	UserID      *uint  `json:"user_id" gorm:"uniqueIndex"`
	Name        string `json:"name" gorm:"not null"`
	CreatedByID *uint  `json:"created_by_id"`
}

// MatchParticipant is the confirmed membership of a player in a match. The
// row itself is the confirmation; there is no separate flag for it. Attended
// records after-the-fact presence and feeds the played-matches listing.
type MatchParticipant struct {
	gorm.Model
	MatchID  uint    `json:"match_id" gorm:"uniqueIndex:idx_match_player;not null"`
	PlayerID uint    `json:"player_id" gorm:"uniqueIndex:idx_match_player;not null"`
	Note     *string `json:"note"`
	Attended bool    `json:"attended" gorm:"default:false"`
}

// AvailablePlayer is a candidate for invitation to a match.
type AvailablePlayer struct {
	UserID    uint     `json:"user_id"`
	PlayerID  uint     `json:"player_id"`
	Name      string   `json:"name"`
	Photo     string   `json:"photo"`
	Positions []string `json:"positions"`
}

// MatchPlayer is a player related to a match, annotated with the most recent
// invitation status (or "manual" when enrolled without one).
type MatchPlayer struct {
	PlayerID      uint     `json:"player_id"`
	ParticipantID *uint    `json:"participant_id"`
	InviteID      *uint    `json:"invite_id"`
	Name          string   `json:"name"`
	Photo         string   `json:"photo"`
	Status        string   `json:"status"`
	Positions     []string `json:"positions"`
}
