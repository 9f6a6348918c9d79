package user

import (
	"errors"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(u *User) error
	GetByID(id uint) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) error
	UpdatePassword(userID uint, passwordHash string) error
	UpdatePasswordByEmail(email, passwordHash string) error
	// DeleteCascade removes the account and everything hanging off it:
	// invites, match and team participations, formation slots, notifications,
	// position preferences, the linked player record and any reset codes.
	DeleteCascade(userID uint) error
	ReplacePositions(userID uint, positionIDs []uint) error
	GetPositionNames(userID uint) ([]string, error)
	GetDeviceToken(userID uint) (string, error)
	WithTransaction(txFunc func(UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) GetByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(u *User) error {
	return r.db.Save(u).Error
}

func (r *userRepository) UpdatePassword(userID uint, passwordHash string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

func (r *userRepository) UpdatePasswordByEmail(email, passwordHash string) error {
	return r.db.Model(&User{}).Where("email = ?", email).Update("password_hash", passwordHash).Error
}

func (r *userRepository) ReplacePositions(userID uint, positionIDs []uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&UserPosition{}).Error; err != nil {
		return err
	}
	if len(positionIDs) == 0 {
		return nil
	}
	links := make([]UserPosition, 0, len(positionIDs))
	for _, pid := range positionIDs {
		links = append(links, UserPosition{UserID: userID, PositionID: pid})
	}
	return r.db.Create(&links).Error
}

func (r *userRepository) GetPositionNames(userID uint) ([]string, error) {
	var names []string
	err := r.db.Table("user_positions").
		Joins("JOIN positions ON positions.id = user_positions.position_id").
		Where("user_positions.user_id = ?", userID).
		Order("positions.name asc").
		Pluck("positions.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *userRepository) GetDeviceToken(userID uint) (string, error) {
	var u User
	if err := r.db.Select("device_token").First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return u.DeviceToken, nil
}

// DeleteCascade reaches into other domains by table name; importing their
// models here would invert the package hierarchy.
func (r *userRepository) DeleteCascade(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var u User
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		playerIDs := tx.Table("players").Select("id").Where("user_id = ?", userID)
		participantIDs := tx.Table("match_participants").Select("id").Where("player_id IN (?)",
			tx.Table("players").Select("id").Where("user_id = ?", userID))

		if err := tx.Exec("DELETE FROM team_participants WHERE match_participant_id IN (?)", participantIDs).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM match_participants WHERE player_id IN (?)", playerIDs).Error; err != nil {
			return err
		}
		for _, stmt := range []string{
			"DELETE FROM formation_slots WHERE user_id = ?",
			"DELETE FROM invites WHERE user_id = ?",
			"DELETE FROM notifications WHERE user_id = ?",
			"DELETE FROM user_positions WHERE user_id = ?",
			"DELETE FROM players WHERE user_id = ?",
		} {
			if err := tx.Exec(stmt, userID).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM password_resets WHERE email = ?", u.Email).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&u).Error
	})
}

func (r *userRepository) WithTransaction(txFunc func(UserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&userRepository{db: tx})
	})
}
