package formation_test

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/peladeiro-app/api/internal/formation"
	"github.com/peladeiro-app/api/internal/invite"
	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/internal/testutil"
	"github.com/peladeiro-app/api/pkg/apperr"
)

// confirm seeds n users and runs each through the invite/accept workflow.
func confirm(t *testing.T, db *gorm.DB, ownerID, matchID uint, n int) []uint {
	t.Helper()
	svc := invite.NewInviteService(db, &testutil.NoopSender{})
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		u := testutil.SeedUser(t, db, "Confirmado", "confirmed"+string(rune('a'+i))+"@test.dev")
		inv, err := svc.Create(matchID, u.ID, ownerID)
		if err != nil {
			t.Fatalf("invite: %v", err)
		}
		if _, err := svc.Accept(inv.ID, u.ID); err != nil {
			t.Fatalf("accept: %v", err)
		}
		ids = append(ids, u.ID)
	}
	return ids
}

func TestSetAuto_BalancedSidesCoverAllConfirmed(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)
	confirmed := confirm(t, db, owner.ID, m.ID, 5)

	svc := formation.NewFormationService(db)
	f, err := svc.SetAuto(m.ID, owner.ID)
	if err != nil {
		t.Fatalf("auto: %v", err)
	}

	diff := len(f.TeamA) - len(f.TeamB)
	if diff < -1 || diff > 1 {
		t.Fatalf("sides unbalanced: %d vs %d", len(f.TeamA), len(f.TeamB))
	}

	placed := make(map[uint]bool)
	for _, s := range append(f.TeamA, f.TeamB...) {
		if placed[s.UserID] {
			t.Fatalf("user %d placed twice", s.UserID)
		}
		placed[s.UserID] = true
	}
	if len(placed) != len(confirmed) {
		t.Fatalf("expected %d placed users, got %d", len(confirmed), len(placed))
	}
	for _, id := range confirmed {
		if !placed[id] {
			t.Fatalf("confirmed user %d missing from formation", id)
		}
	}
}

func TestSetAuto_ReplacesPreviousFormation(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)
	confirm(t, db, owner.ID, m.ID, 4)

	svc := formation.NewFormationService(db)
	if _, err := svc.SetAuto(m.ID, owner.ID); err != nil {
		t.Fatalf("first auto: %v", err)
	}
	f, err := svc.SetAuto(m.ID, owner.ID)
	if err != nil {
		t.Fatalf("second auto: %v", err)
	}
	if len(f.TeamA)+len(f.TeamB) != 4 {
		t.Fatalf("expected 4 slots after replace, got %d", len(f.TeamA)+len(f.TeamB))
	}
}

func TestSetManual_RejectsUnconfirmedUser(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)
	confirmed := confirm(t, db, owner.ID, m.ID, 2)
	outsider := testutil.SeedUser(t, db, "De Fora", "outsider@test.dev")

	svc := formation.NewFormationService(db)
	_, err := svc.SetManual(m.ID, []uint{confirmed[0]}, []uint{outsider.ID}, owner.ID)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Nothing was stored.
	f, err := svc.Get(m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(f.TeamA)+len(f.TeamB) != 0 {
		t.Fatalf("rejected formation must not persist, got %d slots", len(f.TeamA)+len(f.TeamB))
	}
}

func TestSetManual_SplitsBySide(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)
	confirmed := confirm(t, db, owner.ID, m.ID, 3)

	svc := formation.NewFormationService(db)
	f, err := svc.SetManual(m.ID, confirmed[:2], confirmed[2:], owner.ID)
	if err != nil {
		t.Fatalf("manual: %v", err)
	}
	if len(f.TeamA) != 2 || len(f.TeamB) != 1 {
		t.Fatalf("bad split: %d vs %d", len(f.TeamA), len(f.TeamB))
	}
	if f.TeamA[0].Name == "" {
		t.Fatal("slots should carry the user's display name")
	}
}

func TestFormation_CancelledMatchRejected(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)
	confirm(t, db, owner.ID, m.ID, 2)

	if _, err := match.NewMatchRepository(db).CancelByOwner(m.ID, owner.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	svc := formation.NewFormationService(db)
	if _, err := svc.SetAuto(m.ID, owner.ID); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error on cancelled match, got %v", err)
	}
}

func TestClear_OwnerOnly(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev")
	m := testutil.SeedMatch(t, db, owner.ID)
	confirm(t, db, owner.ID, m.ID, 2)

	svc := formation.NewFormationService(db)
	if _, err := svc.SetAuto(m.ID, owner.ID); err != nil {
		t.Fatalf("auto: %v", err)
	}

	if err := svc.Clear(m.ID, owner.ID+99); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.Clear(m.ID, owner.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	f, err := svc.Get(m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(f.TeamA)+len(f.TeamB) != 0 {
		t.Fatal("formation should be empty after clear")
	}
}
