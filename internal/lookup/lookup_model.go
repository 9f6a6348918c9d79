package lookup

import "gorm.io/gorm"

// State is a static geography reference row.
type State struct {
	gorm.Model
	Name string `json:"name" gorm:"not null"`
	UF   string `json:"uf" gorm:"size:2;uniqueIndex;not null"`
}

// City belongs to a State.
type City struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null;index"`
	StateID uint   `json:"state_id" gorm:"index;not null"`
}

// MatchType is the taxonomy of match formats (society, futsal, campo...).
type MatchType struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// Position is a playing position a user can declare as preferred.
type Position struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}
