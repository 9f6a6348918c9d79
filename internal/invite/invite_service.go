package invite

import (
	"gorm.io/gorm"

	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/internal/notification"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/user"
	"github.com/peladeiro-app/api/pkg/apperr"
)

// InviteService implements the invitation workflow. Multi-row mutations
// (accept + enroll) run inside a single transaction.
type InviteService struct {
	db       *gorm.DB
	invites  InviteRepository
	matches  match.MatchRepository
	players  player.PlayerRepository
	users    user.UserRepository
	notifier notification.Sender
}

func NewInviteService(db *gorm.DB, notifier notification.Sender) *InviteService {
	return &InviteService{
		db:       db,
		invites:  NewInviteRepository(db),
		matches:  match.NewMatchRepository(db),
		players:  player.NewPlayerRepository(db),
		users:    user.NewUserRepository(db),
		notifier: notifier,
	}
}

// Create issues a pending invite. Only the match owner may invite; a pending
// invite or an existing participation for the same (match, user) is a conflict.
func (s *InviteService) Create(matchID, inviteeID, requesterID uint) (*Invite, error) {
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

	invitee, err := s.users.GetByID(inviteeID)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, apperr.ErrNotFound
	}

	pending, err := s.invites.HasPending(matchID, inviteeID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperr.ErrConflict
	}

	// An accepted invite leaves a participant row behind; re-inviting an
	// enrolled user is a conflict too.
	if p, err := s.players.GetByUserID(inviteeID); err != nil {
		return nil, err
	} else if p != nil {
		enrolled, err := s.players.IsParticipant(matchID, p.ID)
		if err != nil {
			return nil, err
		}
		if enrolled {
			return nil, apperr.ErrConflict
		}
	}

	inv := &Invite{MatchID: matchID, UserID: inviteeID, Status: StatusPending}
	if err := s.invites.Create(inv); err != nil {
		return nil, err
	}

	s.notifier.Send(inviteeID, "Novo convite", "Você foi convidado para uma pelada em "+m.Location,
		map[string]string{"match_id": itoa(matchID), "invite_id": itoa(inv.ID)})

	return inv, nil
}

// Accept transitions a pending invite addressed to the requester and enrolls
// the invitee as a match participant, all in one transaction. Re-accepting
// finds the invite no longer pending and reports not found; the participant
// row is never duplicated.
func (s *InviteService) Accept(inviteID, requesterID uint) (*Invite, error) {
	var accepted *Invite
	err := s.db.Transaction(func(tx *gorm.DB) error {
		invites := NewInviteRepository(tx)
		players := player.NewPlayerRepository(tx)
		users := user.NewUserRepository(tx)

		inv, err := invites.GetByID(inviteID)
		if err != nil {
			return err
		}
		if inv == nil {
			return apperr.ErrNotFound
		}
		if inv.UserID != requesterID {
			return apperr.ErrForbidden
		}

		ok, err := invites.Transition(inviteID, StatusPending, StatusAccepted)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrNotFound
		}

		u, err := users.GetByID(requesterID)
		if err != nil {
			return err
		}
		if u == nil {
			return apperr.ErrNotFound
		}

		p, err := players.CreateAccountPlayer(requesterID, u.Name)
		if err != nil {
			return err
		}
		if _, _, err := players.EnsureParticipant(inv.MatchID, p.ID, nil); err != nil {
			return err
		}

		inv.Status = StatusAccepted
		accepted = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// Decline transitions a pending invite addressed to the requester. No side
// effect on participation.
func (s *InviteService) Decline(inviteID, requesterID uint) (*Invite, error) {
	inv, err := s.invites.GetByID(inviteID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperr.ErrNotFound
	}
	if inv.UserID != requesterID {
		return nil, apperr.ErrForbidden
	}

	ok, err := s.invites.Transition(inviteID, StatusPending, StatusDeclined)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}
	inv.Status = StatusDeclined
	return inv, nil
}

// Cancel is the owner's withdrawal of a pending invite.
func (s *InviteService) Cancel(inviteID, requesterID uint) (*Invite, error) {
	inv, err := s.invites.GetByID(inviteID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperr.ErrNotFound
	}

	m, err := s.matches.GetByID(inv.MatchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.ErrNotFound
	}
	if m.OwnerID != requesterID {
		return nil, apperr.ErrForbidden
	}

	ok, err := s.invites.Transition(inviteID, StatusPending, StatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrNotFound
	}

	s.notifier.Send(inv.UserID, "Convite cancelado", "O organizador cancelou seu convite",
		map[string]string{"match_id": itoa(inv.MatchID), "invite_id": itoa(inv.ID)})

	inv.Status = StatusCancelled
	return inv, nil
}

func (s *InviteService) ListByMatch(matchID uint) ([]InviteWithUser, error) {
	return s.invites.ListByMatch(matchID)
}

func (s *InviteService) ListByUser(userID uint) ([]Invite, error) {
	return s.invites.ListByUser(userID)
}
