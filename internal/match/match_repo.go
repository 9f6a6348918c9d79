package match

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// MatchRepository defines the interface for match data operations.
type MatchRepository interface {
	Create(m *Match) error
	GetByID(id uint) (*Match, error)
	GetDetailed(id uint) (*MatchDetail, error)
	// UpdateByOwner applies the patch to the row matching id AND owner. A nil
	// result means the match does not exist or the requester does not own it;
	// the two causes are deliberately indistinguishable.
	UpdateByOwner(id, ownerID uint, patch Patch) (*Match, error)
	CancelByOwner(id, ownerID uint) (*Match, error)
	ListCreatedBy(userID uint) ([]Match, error)
	ListPlayedBy(userID uint) ([]Match, error)
	ListByCityName(substr string) ([]Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(m *Match) error {
	return r.db.Create(m).Error
}

func (r *matchRepository) GetByID(id uint) (*Match, error) {
	var m Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetDetailed(id uint) (*MatchDetail, error) {
	var detail MatchDetail
	err := r.db.Table("matches").
		Select("matches.*, cities.name AS city_name, states.id AS state_id, states.name AS state_name, match_types.name AS match_type_name").
		Joins("LEFT JOIN cities ON cities.id = matches.city_id").
		Joins("LEFT JOIN states ON states.id = cities.state_id").
		Joins("LEFT JOIN match_types ON match_types.id = matches.match_type_id").
		Where("matches.id = ? AND matches.deleted_at IS NULL", id).
		Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, nil
	}
	return &detail, nil
}

func (r *matchRepository) UpdateByOwner(id, ownerID uint, patch Patch) (*Match, error) {
	set := patch.Assignments()
	if len(set) == 0 {
		// Empty patch is a no-op read, not an error.
		var m Match
		err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &m, nil
	}

	res := r.db.Model(&Match{}).Where("id = ? AND owner_id = ?", id, ownerID).Updates(set)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *matchRepository) CancelByOwner(id, ownerID uint) (*Match, error) {
	res := r.db.Model(&Match{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("status", StatusCancelled)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *matchRepository) ListCreatedBy(userID uint) ([]Match, error) {
	var matches []Match
	err := r.db.Where("owner_id = ?", userID).
		Order("date desc, start_time desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) ListPlayedBy(userID uint) ([]Match, error) {
	var matches []Match
	err := r.db.
		Joins("JOIN match_participants mp ON mp.match_id = matches.id AND mp.deleted_at IS NULL").
		Joins("JOIN players ON players.id = mp.player_id").
		Where("players.user_id = ? AND mp.attended = ?", userID, true).
		Order("matches.date desc, matches.start_time desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) ListByCityName(substr string) ([]Match, error) {
	var matches []Match
	err := r.db.
		Joins("JOIN cities ON cities.id = matches.city_id").
		Where("LOWER(cities.name) LIKE ?", "%"+strings.ToLower(substr)+"%").
		Order("matches.date desc, matches.start_time desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
