package notification

import (
	"errors"

	"gorm.io/gorm"
)

// NotificationRepository persists push audit rows.
type NotificationRepository interface {
	Create(n *Notification) error
	ListByUser(userID uint) ([]Notification, error)
	// MarkSeen flips the seen flag for the user's own notification. A false
	// return means no such row belongs to the user.
	MarkSeen(id, userID uint) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) ListByUser(userID uint) ([]Notification, error) {
	var notifications []Notification
	err := r.db.Where("user_id = ?", userID).Order("id desc").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkSeen(id, userID uint) (bool, error) {
	res := r.db.Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("seen", true)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
