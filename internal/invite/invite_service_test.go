package invite_test

import (
	"errors"
	"testing"

	"github.com/peladeiro-app/api/internal/invite"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/testutil"
	"github.com/peladeiro-app/api/pkg/apperr"
)

func TestCreateInvite_NonOwnerForbidden(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	invitee := testutil.SeedUser(t, db, "Guest", "guest@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	svc := invite.NewInviteService(db, &testutil.NoopSender{})
	_, err := svc.Create(m.ID, invitee.ID, invitee.ID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateInvite_DuplicatePendingConflict(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	invitee := testutil.SeedUser(t, db, "Guest", "guest@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	svc := invite.NewInviteService(db, &testutil.NoopSender{})
	if _, err := svc.Create(m.ID, invitee.ID, owner.ID); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	_, err := svc.Create(m.ID, invitee.ID, owner.ID)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	history, err := svc.ListByUser(invitee.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 invite, got %d", len(history))
	}
}

func TestAcceptInvite_EnrollsParticipantOnce(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	invitee := testutil.SeedUser(t, db, "Guest", "guest@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	svc := invite.NewInviteService(db, &testutil.NoopSender{})
	inv, err := svc.Create(m.ID, invitee.ID, owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	accepted, err := svc.Accept(inv.ID, invitee.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != invite.StatusAccepted {
		t.Fatalf("expected status %q, got %q", invite.StatusAccepted, accepted.Status)
	}

	players := player.NewPlayerRepository(db)
	p, err := players.GetByUserID(invitee.ID)
	if err != nil || p == nil {
		t.Fatalf("expected account player after accept, got %v / %v", p, err)
	}
	enrolled, err := players.IsParticipant(m.ID, p.ID)
	if err != nil || !enrolled {
		t.Fatalf("expected invitee enrolled, got %v / %v", enrolled, err)
	}

	// Re-accepting finds the invite no longer pending.
	if _, err := svc.Accept(inv.ID, invitee.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on re-accept, got %v", err)
	}
	count, err := players.CountParticipants(m.ID)
	if err != nil || count != 1 {
		t.Fatalf("expected exactly 1 participant, got %d / %v", count, err)
	}
}

func TestCreateInvite_AfterAcceptIsConflict(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	invitee := testutil.SeedUser(t, db, "Guest", "guest@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	svc := invite.NewInviteService(db, &testutil.NoopSender{})
	inv, err := svc.Create(m.ID, invitee.ID, owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Accept(inv.ID, invitee.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := svc.Create(m.ID, invitee.ID, owner.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on re-invite, got %v", err)
	}
	history, err := svc.ListByUser(invitee.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected history of 1, got %d", len(history))
	}
}

func TestAcceptInvite_WrongUserForbidden(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	invitee := testutil.SeedUser(t, db, "Guest", "guest@test.dev")
	other := testutil.SeedUser(t, db, "Other", "other@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	svc := invite.NewInviteService(db, &testutil.NoopSender{})
	inv, err := svc.Create(m.ID, invitee.ID, owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Accept(inv.ID, other.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeclineInvite_NoEnrollment(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	invitee := testutil.SeedUser(t, db, "Guest", "guest@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	svc := invite.NewInviteService(db, &testutil.NoopSender{})
	inv, err := svc.Create(m.ID, invitee.ID, owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	declined, err := svc.Decline(inv.ID, invitee.ID)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.Status != invite.StatusDeclined {
		t.Fatalf("expected %q, got %q", invite.StatusDeclined, declined.Status)
	}

	count, err := player.NewPlayerRepository(db).CountParticipants(m.ID)
	if err != nil || count != 0 {
		t.Fatalf("expected no participants, got %d / %v", count, err)
	}
}

func TestCancelInvite_OwnerOnlyAndNotifies(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	invitee := testutil.SeedUser(t, db, "Guest", "guest@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	sender := &testutil.NoopSender{}
	svc := invite.NewInviteService(db, sender)
	inv, err := svc.Create(m.ID, invitee.ID, owner.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Cancel(inv.ID, invitee.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	cancelled, err := svc.Cancel(inv.ID, owner.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != invite.StatusCancelled {
		t.Fatalf("expected %q, got %q", invite.StatusCancelled, cancelled.Status)
	}
	if len(sender.Sent) != 2 { // invite push + cancellation push
		t.Fatalf("expected 2 notifications, got %d", len(sender.Sent))
	}
	if sender.Sent[1].UserID != invitee.ID {
		t.Fatalf("cancellation push went to user %d", sender.Sent[1].UserID)
	}
}
