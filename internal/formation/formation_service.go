package formation

import (
	"math/rand"

	"gorm.io/gorm"

	"github.com/peladeiro-app/api/internal/invite"
	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/pkg/apperr"
)

// FormationService builds and stores pre-game team splits from the set of
// confirmed (accepted) invitees of a match.
type FormationService struct {
	slots   FormationRepository
	matches match.MatchRepository
	invites invite.InviteRepository
}

func NewFormationService(db *gorm.DB) *FormationService {
	return &FormationService{
		slots:   NewFormationRepository(db),
		matches: match.NewMatchRepository(db),
		invites: invite.NewInviteRepository(db),
	}
}

// writableMatch loads the match and rejects formations on cancelled ones.
func (s *FormationService) writableMatch(matchID, requesterID uint) (*match.Match, error) {
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
	if m.Status == match.StatusCancelled {
		return nil, apperr.Validationf("match is cancelled")
	}
	return m, nil
}

// SetManual replaces the formation with an explicit side assignment. Every
// referenced user must hold an accepted invite for the match.
func (s *FormationService) SetManual(matchID uint, teamA, teamB []uint, requesterID uint) (*Formation, error) {
	if _, err := s.writableMatch(matchID, requesterID); err != nil {
		return nil, err
	}
	if len(teamA) == 0 && len(teamB) == 0 {
		return nil, apperr.ErrNoFields
	}

	accepted, err := s.invites.ListAcceptedUserIDs(matchID)
	if err != nil {
		return nil, err
	}
	confirmed := make(map[uint]bool, len(accepted))
	for _, id := range accepted {
		confirmed[id] = true
	}

	seen := make(map[uint]bool, len(teamA)+len(teamB))
	slots := make([]Slot, 0, len(teamA)+len(teamB))
	for _, pair := range []struct {
		side string
		ids  []uint
	}{{SideA, teamA}, {SideB, teamB}} {
		for _, userID := range pair.ids {
			if !confirmed[userID] {
				return nil, apperr.Validationf("user %d has not accepted an invite for this match", userID)
			}
			if seen[userID] {
				return nil, apperr.Validationf("user %d appears more than once", userID)
			}
			seen[userID] = true
			slots = append(slots, Slot{MatchID: matchID, UserID: userID, Side: pair.side})
		}
	}

	if err := s.slots.Replace(matchID, slots); err != nil {
		return nil, err
	}
	return s.Get(matchID)
}

// SetAuto shuffles the accepted invitees and deals them alternately onto the
// two sides, so the side sizes never differ by more than one.
func (s *FormationService) SetAuto(matchID, requesterID uint) (*Formation, error) {
	if _, err := s.writableMatch(matchID, requesterID); err != nil {
		return nil, err
	}

	accepted, err := s.invites.ListAcceptedUserIDs(matchID)
	if err != nil {
		return nil, err
	}
	if len(accepted) == 0 {
		return nil, apperr.Validationf("match has no confirmed players")
	}

	ids := make([]uint, len(accepted))
	copy(ids, accepted)
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	slots := make([]Slot, 0, len(ids))
	for i, userID := range ids {
		side := SideA
		if i%2 == 1 {
			side = SideB
		}
		slots = append(slots, Slot{MatchID: matchID, UserID: userID, Side: side})
	}

	if err := s.slots.Replace(matchID, slots); err != nil {
		return nil, err
	}
	return s.Get(matchID)
}

// Get returns the stored formation grouped by side. A match without slots
// yields two empty sides, not an error.
func (s *FormationService) Get(matchID uint) (*Formation, error) {
	m, err := s.matches.GetByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.ErrNotFound
	}

	rows, err := s.slots.ListByMatch(matchID)
	if err != nil {
		return nil, err
	}

	f := &Formation{MatchID: matchID, TeamA: []SlotWithUser{}, TeamB: []SlotWithUser{}}
	for _, row := range rows {
		if row.Side == SideA {
			f.TeamA = append(f.TeamA, row)
		} else {
			f.TeamB = append(f.TeamB, row)
		}
	}
	return f, nil
}

// Clear removes the match's formation. Owner only.
func (s *FormationService) Clear(matchID, requesterID uint) error {
	m, err := s.matches.GetByID(matchID)
	if err != nil {
		return err
	}
	if m == nil {
		return apperr.ErrNotFound
	}
	if m.OwnerID != requesterID {
		return apperr.ErrForbidden
	}
	return s.slots.Clear(matchID)
}
