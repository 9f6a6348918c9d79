package user

import "gorm.io/gorm"

// User is a registered account.
type User struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Image        string `json:"image"`
	DeviceToken  string `json:"-"` // push target, set by the mobile client
}

// UserPosition links a user to a preferred playing position.
type UserPosition struct {
	UserID     uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PositionID uint `json:"position_id" gorm:"primaryKey;autoIncrement:false"`
}
