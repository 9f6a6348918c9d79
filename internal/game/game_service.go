package game

import (
	"errors"

	"gorm.io/gorm"

	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/pkg/apperr"
)

// GameService implements game/team/statistics workflows. Every mutation
// authorizes by re-deriving the owning match through joins.
type GameService struct {
	db      *gorm.DB
	games   GameRepository
	matches match.MatchRepository
	players player.PlayerRepository
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{
		db:      db,
		games:   NewGameRepository(db),
		matches: match.NewMatchRepository(db),
		players: player.NewPlayerRepository(db),
	}
}

// CreateGame inserts a bare game under the match. Owner only.
func (s *GameService) CreateGame(matchID uint, name *string, requesterID uint) (*Game, error) {
	m, err := s.matches.GetByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.ErrNotFound
	}
	if m.OwnerID != requesterID {
		return nil, apperr.ErrForbidden
	}

	g := &Game{MatchID: matchID, Name: name}
	if err := s.games.CreateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGame removes the game and everything under it in one transaction.
func (s *GameService) DeleteGame(gameID, requesterID uint) error {
	info, err := s.games.GetMatchInfoByGameID(gameID)
	if err != nil {
		return err
	}
	if info == nil {
		return apperr.ErrNotFound
	}
	if info.OwnerID != requesterID {
		return apperr.ErrForbidden
	}

	return s.games.WithTransaction(func(repo GameRepository) error {
		return repo.DeleteGameCascade(gameID)
	})
}

// CreateTeam adds a named team to the game. Owner only.
func (s *GameService) CreateTeam(gameID uint, name string, requesterID uint) (*Team, error) {
	info, err := s.games.GetMatchInfoByGameID(gameID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperr.ErrNotFound
	}
	if info.OwnerID != requesterID {
		return nil, apperr.ErrForbidden
	}

	t := &Team{GameID: gameID, Name: name}
	if err := s.games.CreateTeam(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *GameService) RenameTeam(teamID uint, name string, requesterID uint) (*Team, error) {
	info, err := s.games.GetMatchInfoByTeamID(teamID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperr.ErrNotFound
	}
	if info.OwnerID != requesterID {
		return nil, apperr.ErrForbidden
	}

	if err := s.games.RenameTeam(teamID, name); err != nil {
		return nil, err
	}
	return s.games.GetTeamByID(teamID)
}

func (s *GameService) DeleteTeam(teamID, requesterID uint) error {
	info, err := s.games.GetMatchInfoByTeamID(teamID)
	if err != nil {
		return err
	}
	if info == nil {
		return apperr.ErrNotFound
	}
	if info.OwnerID != requesterID {
		return apperr.ErrForbidden
	}

	return s.games.WithTransaction(func(repo GameRepository) error {
		return repo.DeleteTeamCascade(teamID)
	})
}

// AddParticipant places a match participant on a team. Validation order:
// ids present, team resolves, requester owns the match, the player actually
// participates in that match, and no prior placement anywhere in the game.
func (s *GameService) AddParticipant(teamID, playerID uint, positionID *uint, requesterID uint) (*TeamParticipant, error) {
	if teamID == 0 || playerID == 0 {
		return nil, apperr.Validationf("team_id and player_id are required")
	}

	team, err := s.games.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperr.ErrNotFound
	}
	info, err := s.games.GetMatchInfoByTeamID(teamID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperr.ErrNotFound
	}
	if info.OwnerID != requesterID {
		return nil, apperr.ErrForbidden
	}

	mp, err := s.matchParticipantOf(info.MatchID, playerID)
	if err != nil {
		return nil, err
	}
	if mp == nil {
		return nil, apperr.ErrNotParticipant
	}

	placed, err := s.games.ExistsInGame(team.GameID, mp.ID)
	if err != nil {
		return nil, err
	}
	if placed {
		return nil, apperr.ErrConflict
	}

	tp := &TeamParticipant{TeamID: teamID, MatchParticipantID: mp.ID, PositionID: positionID}
	if err := s.games.CreateTeamParticipant(tp); err != nil {
		return nil, err
	}
	return tp, nil
}

// UpdateStats applies a partial counter update. Owner only; an empty patch is
// rejected before touching the row.
func (s *GameService) UpdateStats(tpID, requesterID uint, patch StatsPatch) (*TeamParticipant, error) {
	tp, err := s.games.GetTeamParticipantByID(tpID)
	if err != nil {
		return nil, err
	}
	if tp == nil {
		return nil, apperr.ErrNotFound
	}

	info, err := s.games.GetMatchInfoByTeamParticipantID(tpID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperr.ErrNotFound
	}
	if info.OwnerID != requesterID {
		return nil, apperr.ErrForbidden
	}

	set := patch.Assignments()
	if len(set) == 0 {
		return nil, apperr.ErrNoFields
	}

	updated, err := s.games.UpdateTeamParticipant(tpID, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}
	return updated, nil
}

func (s *GameService) RemoveFromTeam(tpID, requesterID uint) error {
	info, err := s.games.GetMatchInfoByTeamParticipantID(tpID)
	if err != nil {
		return err
	}
	if info == nil {
		return apperr.ErrNotFound
	}
	if info.OwnerID != requesterID {
		return apperr.ErrForbidden
	}
	return s.games.DeleteTeamParticipant(tpID)
}

// SummaryByGame aggregates one game into its nested team summaries.
func (s *GameService) SummaryByGame(gameID uint) (*GameSummary, error) {
	g, err := s.games.GetGameByID(gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, apperr.ErrNotFound
	}

	rows, err := s.games.SummaryRowsByGame(gameID)
	if err != nil {
		return nil, err
	}
	games := groupSummary(rows)
	if len(games) == 0 {
		return &GameSummary{GameID: g.ID, Name: g.Name, Teams: []TeamSummary{}}, nil
	}
	return &games[0], nil
}

// SummaryByMatch aggregates every game of the match.
func (s *GameService) SummaryByMatch(matchID uint) (*MatchSummary, error) {
	m, err := s.matches.GetByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.ErrNotFound
	}

	rows, err := s.games.SummaryRowsByMatch(matchID)
	if err != nil {
		return nil, err
	}
	return &MatchSummary{MatchID: matchID, Games: groupSummary(rows)}, nil
}

func (s *GameService) matchParticipantOf(matchID, playerID uint) (*player.MatchParticipant, error) {
	var mp player.MatchParticipant
	err := s.db.Where("match_id = ? AND player_id = ?", matchID, playerID).First(&mp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mp, nil
}

func nvl(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// groupSummary folds the flat join rows into game → team → player summaries,
// keyed by (game, team) and preserving result-set order.
func groupSummary(rows []SummaryRow) []GameSummary {
	games := make([]GameSummary, 0)
	gameIdx := make(map[uint]int)
	teamIdx := make(map[uint]int)

	for _, row := range rows {
		gi, ok := gameIdx[row.GameID]
		if !ok {
			games = append(games, GameSummary{GameID: row.GameID, Name: row.GameName, Teams: []TeamSummary{}})
			gi = len(games) - 1
			gameIdx[row.GameID] = gi
		}

		ti, ok := teamIdx[row.TeamID]
		if !ok {
			games[gi].Teams = append(games[gi].Teams, TeamSummary{
				TeamID:  row.TeamID,
				Name:    row.TeamName,
				Players: []PlayerLine{},
			})
			ti = len(games[gi].Teams) - 1
			teamIdx[row.TeamID] = ti
		}

		if row.TeamParticipantID == nil {
			continue // empty team, left join produced the bare pair
		}

		team := &games[gi].Teams[ti]
		events := Events{
			Goals:       nvl(row.Goals),
			Assists:     nvl(row.Assists),
			Saves:       nvl(row.Saves),
			YellowCards: nvl(row.YellowCards),
			RedCards:    nvl(row.RedCards),
		}
		line := PlayerLine{
			TeamParticipantID: *row.TeamParticipantID,
			Events:            events,
		}
		if row.MatchParticipantID != nil {
			line.MatchParticipantID = *row.MatchParticipantID
		}
		if row.PlayerID != nil {
			line.PlayerID = *row.PlayerID
		}
		if row.PlayerName != nil {
			line.Name = *row.PlayerName
		}
		if row.Photo != nil {
			line.Photo = *row.Photo
		}
		team.Players = append(team.Players, line)
		team.Totals.Goals += events.Goals
		team.Totals.Assists += events.Assists
		team.Totals.YellowCards += events.YellowCards
		team.Totals.RedCards += events.RedCards
	}
	return games
}
