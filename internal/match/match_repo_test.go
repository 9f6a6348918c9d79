package match_test

import (
	"testing"

	"github.com/peladeiro-app/api/internal/lookup"
	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/testutil"
)

func TestCreate_DefaultsToAwaiting(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")

	repo := match.NewMatchRepository(db)
	m := &match.Match{
		Location:  "Campo do Bairro",
		OwnerID:   owner.ID,
		Date:      "2026-09-12",
		StartTime: "20:00",
		Status:    match.StatusAwaiting,
	}
	if err := repo.Create(m); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(m.ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v / %v", got, err)
	}
	if got.Status != match.StatusAwaiting {
		t.Fatalf("expected status %q, got %q", match.StatusAwaiting, got.Status)
	}
}

func TestUpdateByOwner_EmptyPatchIsNoOp(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	repo := match.NewMatchRepository(db)
	got, err := repo.UpdateByOwner(m.ID, owner.ID, match.Patch{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got == nil || got.Location != m.Location {
		t.Fatalf("expected unchanged match back, got %+v", got)
	}
}

func TestUpdateByOwner_NonOwnerGetsNothing(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	other := testutil.SeedUser(t, db, "Other", "other@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	repo := match.NewMatchRepository(db)
	loc := "Hijacked"
	got, err := repo.UpdateByOwner(m.ID, other.ID, match.Patch{Location: &loc})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for non-owner, got %+v", got)
	}

	unchanged, _ := repo.GetByID(m.ID)
	if unchanged.Location != m.Location {
		t.Fatalf("match was modified by non-owner: %q", unchanged.Location)
	}
}

func TestCancelByOwner_SoftStatusChange(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)

	repo := match.NewMatchRepository(db)
	got, err := repo.CancelByOwner(m.ID, owner.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got == nil || got.Status != match.StatusCancelled {
		t.Fatalf("expected cancelled match, got %+v", got)
	}

	// The row survives cancellation.
	still, err := repo.GetByID(m.ID)
	if err != nil || still == nil {
		t.Fatalf("cancelled match should still resolve: %v / %v", still, err)
	}
}

func TestListByCityName_CaseInsensitiveSubstring(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")

	state := lookup.State{Name: "São Paulo", UF: "SP"}
	if err := db.Create(&state).Error; err != nil {
		t.Fatalf("seed state: %v", err)
	}
	city := lookup.City{Name: "Campinas", StateID: state.ID}
	if err := db.Create(&city).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}

	m := testutil.SeedMatch(t, db, owner.ID)
	if err := db.Model(&match.Match{}).Where("id = ?", m.ID).Update("city_id", city.ID).Error; err != nil {
		t.Fatalf("bind city: %v", err)
	}
	testutil.SeedMatch(t, db, owner.ID) // no city, must not appear

	repo := match.NewMatchRepository(db)
	found, err := repo.ListByCityName("campin")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != m.ID {
		t.Fatalf("expected only the Campinas match, got %+v", found)
	}
}

func TestListPlayedBy_OnlyAttendedMatches(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	ana := testutil.SeedUser(t, db, "Ana", "ana@test.dev")
	rui := testutil.SeedUser(t, db, "Rui", "rui@test.dev")

	players := player.NewPlayerRepository(db)
	anaPlayer, err := players.CreateAccountPlayer(ana.ID, "Ana")
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	ruiPlayer, err := players.CreateAccountPlayer(rui.ID, "Rui")
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}

	played := testutil.SeedMatch(t, db, owner.ID)
	skipped := testutil.SeedMatch(t, db, owner.ID)
	for _, mp := range []player.MatchParticipant{
		{MatchID: played.ID, PlayerID: anaPlayer.ID, Attended: true},
		{MatchID: skipped.ID, PlayerID: anaPlayer.ID, Attended: false},
		{MatchID: skipped.ID, PlayerID: ruiPlayer.ID, Attended: true},
	} {
		if err := db.Create(&mp).Error; err != nil {
			t.Fatalf("seed participant: %v", err)
		}
	}

	repo := match.NewMatchRepository(db)
	got, err := repo.ListPlayedBy(ana.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != played.ID {
		t.Fatalf("expected only the attended match, got %+v", got)
	}
}

func TestListCreatedBy_OnlyOwnMatches(t *testing.T) {
	db := testutil.OpenDB(t)
	a := testutil.SeedUser(t, db, "A", "a@test.dev")
	b := testutil.SeedUser(t, db, "B", "b@test.dev")
	testutil.SeedMatch(t, db, a.ID)
	testutil.SeedMatch(t, db, a.ID)
	testutil.SeedMatch(t, db, b.ID)

	repo := match.NewMatchRepository(db)
	mine, err := repo.ListCreatedBy(a.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(mine))
	}
}
