package formation

import "time"

const (
	SideA = "A"
	SideB = "B"
)

// Slot assigns one confirmed user to a side of the match's formation.
// The whole formation is replaced atomically on every write.
type Slot struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MatchID   uint      `json:"match_id" gorm:"uniqueIndex:idx_formation_user;not null"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_formation_user;not null"`
	Side      string    `json:"side" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Slot) TableName() string {
	return "formation_slots"
}

// SlotWithUser is a slot joined with the assignee's display fields.
type SlotWithUser struct {
	ID      uint   `json:"id"`
	MatchID uint   `json:"match_id"`
	UserID  uint   `json:"user_id"`
	Side    string `json:"side"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image"`
}

// Formation groups a match's slots by side.
type Formation struct {
	MatchID uint           `json:"match_id"`
	TeamA   []SlotWithUser `json:"team_a"`
	TeamB   []SlotWithUser `json:"team_b"`
}
