package game

import (
	"errors"

	"gorm.io/gorm"
)

// MatchInfo identifies the match owning a game-scoped row, re-derived through
// joins for every authorization check.
type MatchInfo struct {
	MatchID uint
	OwnerID uint
}

// GameRepository defines the interface for game, team and statistics data.
type GameRepository interface {
	CreateGame(g *Game) error
	GetGameByID(id uint) (*Game, error)
	DeleteGameCascade(gameID uint) error

	CreateTeam(t *Team) error
	GetTeamByID(id uint) (*Team, error)
	RenameTeam(id uint, name string) error
	DeleteTeamCascade(teamID uint) error

	GetMatchInfoByGameID(gameID uint) (*MatchInfo, error)
	GetMatchInfoByTeamID(teamID uint) (*MatchInfo, error)
	GetMatchInfoByTeamParticipantID(tpID uint) (*MatchInfo, error)

	ExistsInGame(gameID, matchParticipantID uint) (bool, error)
	CreateTeamParticipant(tp *TeamParticipant) error
	GetTeamParticipantByID(id uint) (*TeamParticipant, error)
	UpdateTeamParticipant(id uint, set map[string]interface{}) (*TeamParticipant, error)
	DeleteTeamParticipant(id uint) error

	SummaryRowsByMatch(matchID uint) ([]SummaryRow, error)
	SummaryRowsByGame(gameID uint) ([]SummaryRow, error)

	WithTransaction(txFunc func(GameRepository) error) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) CreateGame(g *Game) error {
	return r.db.Create(g).Error
}

func (r *gameRepository) GetGameByID(id uint) (*Game, error) {
	var g Game
	if err := r.db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// DeleteGameCascade removes the game's team participants, then its teams, then
// the game. Callers wrap it in a transaction.
func (r *gameRepository) DeleteGameCascade(gameID uint) error {
	teamSub := r.db.Model(&Team{}).Select("id").Where("game_id = ?", gameID)
	if err := r.db.Where("team_id IN (?)", teamSub).Delete(&TeamParticipant{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("game_id = ?", gameID).Delete(&Team{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&Game{}, gameID).Error
}

func (r *gameRepository) CreateTeam(t *Team) error {
	return r.db.Create(t).Error
}

func (r *gameRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *gameRepository) RenameTeam(id uint, name string) error {
	return r.db.Model(&Team{}).Where("id = ?", id).Update("name", name).Error
}

func (r *gameRepository) DeleteTeamCascade(teamID uint) error {
	if err := r.db.Where("team_id = ?", teamID).Delete(&TeamParticipant{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&Team{}, teamID).Error
}

func (r *gameRepository) GetMatchInfoByGameID(gameID uint) (*MatchInfo, error) {
	var info MatchInfo
	err := r.db.Table("games").
		Select("matches.id AS match_id, matches.owner_id AS owner_id").
		Joins("JOIN matches ON matches.id = games.match_id").
		Where("games.id = ? AND games.deleted_at IS NULL", gameID).
		Scan(&info).Error
	if err != nil {
		return nil, err
	}
	if info.MatchID == 0 {
		return nil, nil
	}
	return &info, nil
}

func (r *gameRepository) GetMatchInfoByTeamID(teamID uint) (*MatchInfo, error) {
	var info MatchInfo
	err := r.db.Table("teams").
		Select("matches.id AS match_id, matches.owner_id AS owner_id").
		Joins("JOIN games ON games.id = teams.game_id").
		Joins("JOIN matches ON matches.id = games.match_id").
		Where("teams.id = ? AND teams.deleted_at IS NULL", teamID).
		Scan(&info).Error
	if err != nil {
		return nil, err
	}
	if info.MatchID == 0 {
		return nil, nil
	}
	return &info, nil
}

func (r *gameRepository) GetMatchInfoByTeamParticipantID(tpID uint) (*MatchInfo, error) {
	var info MatchInfo
	err := r.db.Table("team_participants").
		Select("matches.id AS match_id, matches.owner_id AS owner_id").
		Joins("JOIN teams ON teams.id = team_participants.team_id").
		Joins("JOIN games ON games.id = teams.game_id").
		Joins("JOIN matches ON matches.id = games.match_id").
		Where("team_participants.id = ? AND team_participants.deleted_at IS NULL", tpID).
		Scan(&info).Error
	if err != nil {
		return nil, err
	}
	if info.MatchID == 0 {
		return nil, nil
	}
	return &info, nil
}

// ExistsInGame reports whether the match participant already sits on any team
// of the game. Cross-team placement within one game is a conflict.
func (r *gameRepository) ExistsInGame(gameID, matchParticipantID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamParticipant{}).
		Joins("JOIN teams ON teams.id = team_participants.team_id").
		Where("teams.game_id = ? AND team_participants.match_participant_id = ?", gameID, matchParticipantID).
		Count(&count).Error
	return count > 0, err
}

func (r *gameRepository) CreateTeamParticipant(tp *TeamParticipant) error {
	return r.db.Create(tp).Error
}

func (r *gameRepository) GetTeamParticipantByID(id uint) (*TeamParticipant, error) {
	var tp TeamParticipant
	if err := r.db.First(&tp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tp, nil
}

func (r *gameRepository) UpdateTeamParticipant(id uint, set map[string]interface{}) (*TeamParticipant, error) {
	res := r.db.Model(&TeamParticipant{}).Where("id = ?", id).Updates(set)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetTeamParticipantByID(id)
}

func (r *gameRepository) DeleteTeamParticipant(id uint) error {
	return r.db.Delete(&TeamParticipant{}, id).Error
}

// SummaryRow is one row of the summary join: a game/team pair, optionally
// carrying one participant. Rows come back ordered by game, team, then
// participant id; grouping preserves that order.
type SummaryRow struct {
	GameID             uint
	GameName           *string
	TeamID             uint
	TeamName           string
	TeamParticipantID  *uint
	MatchParticipantID *uint
	PlayerID           *uint
	PlayerName         *string
	Photo              *string
	Goals              *int
	Assists            *int
	Saves              *int
	YellowCards        *int
	RedCards           *int
}

const summarySelect = `games.id AS game_id, games.name AS game_name,
teams.id AS team_id, teams.name AS team_name,
tp.id AS team_participant_id, tp.match_participant_id AS match_participant_id,
mp.player_id AS player_id, players.name AS player_name, users.image AS photo,
tp.goals AS goals, tp.assists AS assists, tp.saves AS saves,
tp.yellow_cards AS yellow_cards, tp.red_cards AS red_cards`

func (r *gameRepository) summaryQuery() *gorm.DB {
	return r.db.Table("games").
		Select(summarySelect).
		Joins("JOIN teams ON teams.game_id = games.id AND teams.deleted_at IS NULL").
		Joins("LEFT JOIN team_participants tp ON tp.team_id = teams.id AND tp.deleted_at IS NULL").
		Joins("LEFT JOIN match_participants mp ON mp.id = tp.match_participant_id").
		Joins("LEFT JOIN players ON players.id = mp.player_id").
		Joins("LEFT JOIN users ON users.id = players.user_id").
		Where("games.deleted_at IS NULL").
		Order("games.id, teams.id, tp.id")
}

func (r *gameRepository) SummaryRowsByMatch(matchID uint) ([]SummaryRow, error) {
	var rows []SummaryRow
	if err := r.summaryQuery().Where("games.match_id = ?", matchID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gameRepository) SummaryRowsByGame(gameID uint) ([]SummaryRow, error) {
	var rows []SummaryRow
	if err := r.summaryQuery().Where("games.id = ?", gameID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gameRepository) WithTransaction(txFunc func(GameRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&gameRepository{db: tx})
	})
}
