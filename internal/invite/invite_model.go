package invite

import "gorm.io/gorm"

// Invite statuses. Every transition out of StatusPending is terminal and is
// guarded by a `status = 'pendente'` filter in the UPDATE itself.
const (
	StatusPending   = "pendente"
	StatusAccepted  = "aceito"
	StatusDeclined  = "recusado"
	StatusCancelled = "cancelado"
)

// Invite is an offer from the match owner to a user to join a match.
type Invite struct {
	gorm.Model
	MatchID uint   `json:"match_id" gorm:"index;not null"`
	UserID  uint   `json:"user_id" gorm:"index;not null"`
	Status  string `json:"status" gorm:"not null;default:'pendente'"`
}

// InviteWithUser is an invite joined with the invitee's display fields.
type InviteWithUser struct {
	Invite
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	UserPhoto string `json:"user_photo"`
}
