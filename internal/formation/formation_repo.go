package formation

import "gorm.io/gorm"

type FormationRepository interface {
	Replace(matchID uint, slots []Slot) error
	ListByMatch(matchID uint) ([]SlotWithUser, error)
	Clear(matchID uint) error
}

type formationRepository struct {
	db *gorm.DB
}

func NewFormationRepository(db *gorm.DB) FormationRepository {
	return &formationRepository{db: db}
}

// Replace drops the match's current slots and inserts the new set in one
// transaction, so readers never observe a half-written formation.
func (r *formationRepository) Replace(matchID uint, slots []Slot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", matchID).Delete(&Slot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}

func (r *formationRepository) ListByMatch(matchID uint) ([]SlotWithUser, error) {
	var slots []SlotWithUser
	err := r.db.Table("formation_slots").
		Select("formation_slots.id, formation_slots.match_id, formation_slots.user_id, formation_slots.side, users.name, users.email, users.image").
		Joins("JOIN users ON users.id = formation_slots.user_id").
		Where("formation_slots.match_id = ?", matchID).
		Order("formation_slots.side, formation_slots.id").
		Scan(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *formationRepository) Clear(matchID uint) error {
	return r.db.Where("match_id = ?", matchID).Delete(&Slot{}).Error
}
