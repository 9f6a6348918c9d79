package invite

import (
	"errors"

	"gorm.io/gorm"
)

// InviteRepository defines the interface for invitation data operations.
type InviteRepository interface {
	Create(inv *Invite) error
	GetByID(id uint) (*Invite, error)
	HasPending(matchID, userID uint) (bool, error)
	// Transition moves an invite from one status to another in a single
	// guarded UPDATE. False means the row was not in the expected status.
	Transition(id uint, from, to string) (bool, error)
	ListByMatch(matchID uint) ([]InviteWithUser, error)
	ListByUser(userID uint) ([]Invite, error)
	ListAcceptedUserIDs(matchID uint) ([]uint, error)
	WithTransaction(txFunc func(InviteRepository) error) error
}

type inviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(inv *Invite) error {
	return r.db.Create(inv).Error
}

func (r *inviteRepository) GetByID(id uint) (*Invite, error) {
	var inv Invite
	if err := r.db.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *inviteRepository) HasPending(matchID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Invite{}).
		Where("match_id = ? AND user_id = ? AND status = ?", matchID, userID, StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *inviteRepository) Transition(id uint, from, to string) (bool, error) {
	res := r.db.Model(&Invite{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *inviteRepository) ListByMatch(matchID uint) ([]InviteWithUser, error) {
	var invites []InviteWithUser
	err := r.db.Table("invites").
		Select("invites.*, users.name AS user_name, users.email AS user_email, users.image AS user_photo").
		Joins("JOIN users ON users.id = invites.user_id").
		Where("invites.match_id = ? AND invites.deleted_at IS NULL", matchID).
		Order("invites.id desc").
		Scan(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *inviteRepository) ListByUser(userID uint) ([]Invite, error) {
	var invites []Invite
	err := r.db.Where("user_id = ?", userID).Order("id desc").Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *inviteRepository) ListAcceptedUserIDs(matchID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&Invite{}).
		Where("match_id = ? AND status = ?", matchID, StatusAccepted).
		Order("id asc").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *inviteRepository) WithTransaction(txFunc func(InviteRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&inviteRepository{db: tx})
	})
}
