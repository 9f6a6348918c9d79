package player_test

import (
	"testing"

	"github.com/peladeiro-app/api/internal/invite"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/testutil"
)

func TestCreateAccountPlayer_UpsertsAndRenames(t *testing.T) {
	db := testutil.OpenDB(t)
	u := testutil.SeedUser(t, db, "Ana", "ana@test.dev")
	repo := player.NewPlayerRepository(db)

	p1, err := repo.CreateAccountPlayer(u.ID, "Ana")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p2, err := repo.CreateAccountPlayer(u.ID, "Ana Clara")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if p1.ID != p2.ID {
		t.Fatalf("expected same player row, got %d and %d", p1.ID, p2.ID)
	}
	if p2.Name != "Ana Clara" {
		t.Fatalf("expected rename, got %q", p2.Name)
	}
}

func TestEnsureParticipant_Idempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)
	repo := player.NewPlayerRepository(db)

	p, err := repo.CreateExternalPlayer("Convidado", owner.ID)
	if err != nil {
		t.Fatalf("external player: %v", err)
	}

	_, created, err := repo.EnsureParticipant(m.ID, p.ID, nil)
	if err != nil || !created {
		t.Fatalf("first ensure: created=%v err=%v", created, err)
	}
	_, created, err = repo.EnsureParticipant(m.ID, p.ID, nil)
	if err != nil || created {
		t.Fatalf("second ensure: created=%v err=%v", created, err)
	}

	count, err := repo.CountParticipants(m.ID)
	if err != nil || count != 1 {
		t.Fatalf("expected 1 participant, got %d / %v", count, err)
	}
}

func TestListAvailableForMatch_ExcludesBlockedUsers(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	pending := testutil.SeedUser(t, db, "Pendente", "pending@test.dev")
	accepted := testutil.SeedUser(t, db, "Aceito", "accepted@test.dev")
	declined := testutil.SeedUser(t, db, "Recusou", "declined@test.dev")
	free := testutil.SeedUser(t, db, "Livre", "free@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	svc := invite.NewInviteService(db, &testutil.NoopSender{})
	if _, err := svc.Create(m.ID, pending.ID, owner.ID); err != nil {
		t.Fatalf("invite pending: %v", err)
	}
	inv, err := svc.Create(m.ID, accepted.ID, owner.ID)
	if err != nil {
		t.Fatalf("invite accepted: %v", err)
	}
	if _, err := svc.Accept(inv.ID, accepted.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	inv, err = svc.Create(m.ID, declined.ID, owner.ID)
	if err != nil {
		t.Fatalf("invite declined: %v", err)
	}
	if _, err := svc.Decline(inv.ID, declined.ID); err != nil {
		t.Fatalf("decline: %v", err)
	}

	repo := player.NewPlayerRepository(db)
	available, err := repo.ListAvailableForMatch(m.ID, "")
	if err != nil {
		t.Fatalf("list available: %v", err)
	}

	got := make(map[uint]bool, len(available))
	for _, a := range available {
		got[a.UserID] = true
	}
	if got[owner.ID] {
		t.Fatal("owner should not be listed as available")
	}
	if got[pending.ID] {
		t.Fatal("user with pending invite should be excluded")
	}
	if got[accepted.ID] {
		t.Fatal("enrolled user should be excluded")
	}
	if !got[declined.ID] {
		t.Fatal("user who declined should be available again")
	}
	if !got[free.ID] {
		t.Fatal("uninvolved user should be available")
	}
}

func TestListAvailableForMatch_NameFilter(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	testutil.SeedUser(t, db, "Rafael", "rafael@test.dev")
	testutil.SeedUser(t, db, "Bruno", "bruno@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	repo := player.NewPlayerRepository(db)
	available, err := repo.ListAvailableForMatch(m.ID, "RAFA")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(available) != 1 || available[0].Name != "Rafael" {
		t.Fatalf("expected only Rafael, got %+v", available)
	}
}
