package notification

import (
	"time"

	"gorm.io/gorm"
)

// Notification is an audit row for a push message sent to a user. It is
// written whether or not the push gateway accepted the message.
type Notification struct {
	gorm.Model
	UserID  uint      `json:"user_id" gorm:"index;not null"`
	Message string    `json:"message" gorm:"not null"`
	Seen    bool      `json:"seen" gorm:"default:false"`
	SentAt  time.Time `json:"sent_at"`
}
