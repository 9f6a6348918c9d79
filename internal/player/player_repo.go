package player

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// invite statuses that keep a user off the available list. Mirrored here so
// this package does not depend on the invite package.
var blockingInviteStatuses = []string{"pendente", "aceito"}

// PlayerRepository defines the interface for player and participation data.
type PlayerRepository interface {
	CreateAccountPlayer(userID uint, name string) (*Player, error)
	CreateExternalPlayer(name string, createdByID uint) (*Player, error)
	GetByID(id uint) (*Player, error)
	GetByUserID(userID uint) (*Player, error)
	RenameAccountPlayer(userID uint, name string) error

	EnsureParticipant(matchID, playerID uint, note *string) (*MatchParticipant, bool, error)
	GetParticipantByID(id uint) (*MatchParticipant, error)
	IsParticipant(matchID, playerID uint) (bool, error)
	RemoveParticipant(id uint) error
	CountParticipants(matchID uint) (int64, error)

	ListAvailableForMatch(matchID uint, nameFilter string) ([]AvailablePlayer, error)
	ListAllForMatch(matchID uint) ([]MatchPlayer, error)

	WithTransaction(txFunc func(PlayerRepository) error) error
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// CreateAccountPlayer upserts the single account-backed player of a user,
// updating the display name when the row already exists.
func (r *playerRepository) CreateAccountPlayer(userID uint, name string) (*Player, error) {
	existing, err := r.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if name != "" && name != existing.Name {
			existing.Name = name
			if err := r.db.Save(existing).Error; err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	p := &Player{Kind: KindAccount, UserID: &userID, Name: name}
	if err := r.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *playerRepository) CreateExternalPlayer(name string, createdByID uint) (*Player, error) {
	p := &Player{Kind: KindExternal, Name: name, CreatedByID: &createdByID}
	if err := r.db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *playerRepository) GetByID(id uint) (*Player, error) {
	var p Player
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) GetByUserID(userID uint) (*Player, error) {
	var p Player
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) RenameAccountPlayer(userID uint, name string) error {
	return r.db.Model(&Player{}).Where("user_id = ?", userID).Update("name", name).Error
}

// EnsureParticipant is the idempotent "join the match" primitive: it returns
// the existing (match, player) row untouched, or inserts a new one. The second
// return value reports whether an insert happened.
func (r *playerRepository) EnsureParticipant(matchID, playerID uint, note *string) (*MatchParticipant, bool, error) {
	var existing MatchParticipant
	err := r.db.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	mp := &MatchParticipant{MatchID: matchID, PlayerID: playerID, Note: note}
	if err := r.db.Create(mp).Error; err != nil {
		return nil, false, err
	}
	return mp, true, nil
}

func (r *playerRepository) GetParticipantByID(id uint) (*MatchParticipant, error) {
	var mp MatchParticipant
	if err := r.db.First(&mp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mp, nil
}

func (r *playerRepository) IsParticipant(matchID, playerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&MatchParticipant{}).
		Where("match_id = ? AND player_id = ?", matchID, playerID).
		Count(&count).Error
	return count > 0, err
}

func (r *playerRepository) RemoveParticipant(id uint) error {
	return r.db.Delete(&MatchParticipant{}, id).Error
}

func (r *playerRepository) CountParticipants(matchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&MatchParticipant{}).Where("match_id = ?", matchID).Count(&count).Error
	return count, err
}

// ListAvailableForMatch returns account-backed players who are not yet a
// participant, hold no pending or accepted invite for the match, and are not
// the match owner. The optional filter matches name substrings
// case-insensitively.
func (r *playerRepository) ListAvailableForMatch(matchID uint, nameFilter string) ([]AvailablePlayer, error) {
	var ownerID uint
	if err := r.db.Table("matches").Select("owner_id").Where("id = ?", matchID).Scan(&ownerID).Error; err != nil {
		return nil, err
	}

	participantSub := r.db.Model(&MatchParticipant{}).Select("player_id").Where("match_id = ?", matchID)
	inviteSub := r.db.Table("invites").Select("user_id").
		Where("match_id = ? AND status IN ? AND deleted_at IS NULL", matchID, blockingInviteStatuses)

	type row struct {
		UserID   uint
		PlayerID uint
		Name     string
		Photo    string
	}
	var rows []row
	query := r.db.Table("players").
		Select("players.user_id AS user_id, players.id AS player_id, players.name AS name, users.image AS photo").
		Joins("JOIN users ON users.id = players.user_id").
		Where("players.kind = ?", KindAccount).
		Where("players.user_id <> ?", ownerID).
		Where("players.id NOT IN (?)", participantSub).
		Where("players.user_id NOT IN (?)", inviteSub).
		Where("players.deleted_at IS NULL")
	if nameFilter != "" {
		query = query.Where("LOWER(players.name) LIKE ?", "%"+strings.ToLower(nameFilter)+"%")
	}
	if err := query.Order("players.name asc").Scan(&rows).Error; err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(rows))
	for _, rw := range rows {
		userIDs = append(userIDs, rw.UserID)
	}
	positions, err := r.positionNamesByUser(userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]AvailablePlayer, 0, len(rows))
	for _, rw := range rows {
		out = append(out, AvailablePlayer{
			UserID:    rw.UserID,
			PlayerID:  rw.PlayerID,
			Name:      rw.Name,
			Photo:     rw.Photo,
			Positions: positions[rw.UserID],
		})
	}
	return out, nil
}

// ListAllForMatch returns every player who participates in the match or has
// invite history for it, each annotated with the most recent invite status.
func (r *playerRepository) ListAllForMatch(matchID uint) ([]MatchPlayer, error) {
	type row struct {
		PlayerID      uint
		UserID        *uint
		ParticipantID *uint
		Name          string
		Photo         string
	}
	var rows []row
	err := r.db.Table("players").
		Select("players.id AS player_id, players.user_id AS user_id, mp.id AS participant_id, players.name AS name, users.image AS photo").
		Joins("LEFT JOIN match_participants mp ON mp.player_id = players.id AND mp.match_id = ? AND mp.deleted_at IS NULL", matchID).
		Joins("LEFT JOIN users ON users.id = players.user_id").
		Where("players.deleted_at IS NULL").
		Order("players.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Latest invite per user for the match, newest id wins.
	type inviteRow struct {
		ID     uint
		UserID uint
		Status string
	}
	var inviteRows []inviteRow
	err = r.db.Table("invites").
		Select("id, user_id, status").
		Where("match_id = ? AND deleted_at IS NULL", matchID).
		Order("id desc").
		Scan(&inviteRows).Error
	if err != nil {
		return nil, err
	}
	latest := make(map[uint]inviteRow)
	for _, iv := range inviteRows {
		if _, seen := latest[iv.UserID]; !seen {
			latest[iv.UserID] = iv
		}
	}

	userIDs := make([]uint, 0, len(rows))
	for _, rw := range rows {
		if rw.UserID != nil {
			userIDs = append(userIDs, *rw.UserID)
		}
	}
	positions, err := r.positionNamesByUser(userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]MatchPlayer, 0)
	for _, rw := range rows {
		var iv *inviteRow
		if rw.UserID != nil {
			if found, ok := latest[*rw.UserID]; ok {
				iv = &found
			}
		}
		if rw.ParticipantID == nil && iv == nil {
			continue
		}
		mp := MatchPlayer{
			PlayerID:      rw.PlayerID,
			ParticipantID: rw.ParticipantID,
			Name:          rw.Name,
			Photo:         rw.Photo,
			Status:        StatusManual,
		}
		if iv != nil {
			id := iv.ID
			mp.InviteID = &id
			mp.Status = iv.Status
		}
		if rw.UserID != nil {
			mp.Positions = positions[*rw.UserID]
		}
		out = append(out, mp)
	}
	return out, nil
}

func (r *playerRepository) positionNamesByUser(userIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string)
	if len(userIDs) == 0 {
		return result, nil
	}
	type posRow struct {
		UserID uint
		Name   string
	}
	var posRows []posRow
	err := r.db.Table("user_positions").
		Select("user_positions.user_id AS user_id, positions.name AS name").
		Joins("JOIN positions ON positions.id = user_positions.position_id").
		Where("user_positions.user_id IN ?", userIDs).
		Order("positions.name asc").
		Scan(&posRows).Error
	if err != nil {
		return nil, err
	}
	for _, pr := range posRows {
		result[pr.UserID] = append(result[pr.UserID], pr.Name)
	}
	return result, nil
}

func (r *playerRepository) WithTransaction(txFunc func(PlayerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&playerRepository{db: tx})
	})
}
