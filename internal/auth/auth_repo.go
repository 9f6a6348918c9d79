package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ResetRepository defines the interface for password reset code operations.
type ResetRepository interface {
	Create(reset *PasswordReset) error
	GetValidByCode(code string) (*PasswordReset, error)
	DeleteByEmail(email string) error
}

type resetRepository struct {
	db *gorm.DB
}

func NewResetRepository(db *gorm.DB) ResetRepository {
	return &resetRepository{db: db}
}

func (r *resetRepository) Create(reset *PasswordReset) error {
	return r.db.Create(reset).Error
}

// GetValidByCode returns the reset row for an unexpired code, nil when the
// code is unknown or stale.
func (r *resetRepository) GetValidByCode(code string) (*PasswordReset, error) {
	var reset PasswordReset
	err := r.db.Where("code = ? AND expires_at > ?", code, time.Now()).First(&reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *resetRepository) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&PasswordReset{}).Error
}
