package match

import "gorm.io/gorm"

// MatchStatus values. Creation always starts at StatusAwaiting; cancellation is
// a soft status change, never a delete.
const (
	StatusAwaiting  = "aguardando"
	StatusCancelled = "cancelada"
)

// Match is a scheduled sporting event owned by its creator.
type Match struct {
	gorm.Model
	Location     string   `json:"location" gorm:"not null"`
	Street       *string  `json:"street"`
	Neighborhood *string  `json:"neighborhood"`
	Number       *string  `json:"number"`
	CityID       *uint    `json:"city_id"`
	OwnerID      uint     `json:"owner_id" gorm:"index;not null"`
	Open         bool     `json:"open" gorm:"default:false"`
	Date         string   `json:"date" gorm:"not null"` // ISO date, sorts lexicographically
	StartTime    string   `json:"start_time" gorm:"not null"`
	EndTime      *string  `json:"end_time"`
	MatchTypeID  *uint    `json:"match_type_id"`
	Status       string   `json:"status" gorm:"not null;default:'aguardando'"`
	Fee          *float64 `json:"fee"`
}

// MatchDetail is a match joined with its city/state/type display names.
type MatchDetail struct {
	Match
	CityName      *string `json:"city_name"`
	StateID       *uint   `json:"state_id"`
	StateName     *string `json:"state_name"`
	MatchTypeName *string `json:"match_type_name"`
}

// Patch is the closed set of fields an owner may update. Nil means "leave
// unchanged"; anything outside this struct cannot reach the UPDATE statement.
type Patch struct {
	Location     *string  `json:"location"`
	Street       *string  `json:"street"`
	Neighborhood *string  `json:"neighborhood"`
	Number       *string  `json:"number"`
	CityID       *uint    `json:"city_id"`
	Open         *bool    `json:"open"`
	Date         *string  `json:"date"`
	StartTime    *string  `json:"start_time"`
	EndTime      *string  `json:"end_time"`
	MatchTypeID  *uint    `json:"match_type_id"`
	Status       *string  `json:"status"`
	Fee          *float64 `json:"fee"`
}

// Assignments emits the parameterized SET map for the fields actually present.
func (p Patch) Assignments() map[string]interface{} {
	set := make(map[string]interface{})
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Street != nil {
		set["street"] = *p.Street
	}
	if p.Neighborhood != nil {
		set["neighborhood"] = *p.Neighborhood
	}
	if p.Number != nil {
		set["number"] = *p.Number
	}
	if p.CityID != nil {
		set["city_id"] = *p.CityID
	}
	if p.Open != nil {
		set["open"] = *p.Open
	}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.StartTime != nil {
		set["start_time"] = *p.StartTime
	}
	if p.EndTime != nil {
		set["end_time"] = *p.EndTime
	}
	if p.MatchTypeID != nil {
		set["match_type_id"] = *p.MatchTypeID
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Fee != nil {
		set["fee"] = *p.Fee
	}
	return set
}
