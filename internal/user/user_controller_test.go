package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peladeiro-app/api/internal/formation"
	"github.com/peladeiro-app/api/internal/game"
	"github.com/peladeiro-app/api/internal/invite"
	"github.com/peladeiro-app/api/internal/notification"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/testutil"
	"github.com/peladeiro-app/api/internal/user"
	"github.com/peladeiro-app/api/pkg/token"
	"github.com/peladeiro-app/api/utils"
)

const testSecret = "test-secret"

func userRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.OpenDB(t)
	r := gin.New()
	user.UserRoutes(r.Group("/api"), db, testSecret)
	return r, db
}

// seedAccount creates a user with a real password hash plus the linked
// player record, the way registration does.
func seedAccount(t *testing.T, db *gorm.DB, name, email, password string) (*user.User, *player.Player) {
	t.Helper()
	u := testutil.SeedUser(t, db, name, email)
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Model(u).Update("password_hash", hash).Error; err != nil {
		t.Fatalf("set password: %v", err)
	}
	p, err := player.NewPlayerRepository(db).CreateAccountPlayer(u.ID, name)
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return u, p
}

func authedRequest(t *testing.T, r *gin.Engine, userID uint, email, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	signed, err := token.Generate(userID, email, testSecret, 5)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+signed)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChangePassword_VerifiesCurrent(t *testing.T) {
	r, db := userRouter(t)
	u, _ := seedAccount(t, db, "Ana", "ana@test.dev", "secret1")

	w := authedRequest(t, r, u.ID, u.Email, http.MethodPut, "/api/users/me/password", gin.H{
		"current_password": "wrong", "new_password": "newpass1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong current password, got %d", w.Code)
	}

	w = authedRequest(t, r, u.ID, u.Email, http.MethodPut, "/api/users/me/password", gin.H{
		"current_password": "secret1", "new_password": "newpass1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	reloaded, err := user.NewUserRepository(db).GetByID(u.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload: %v / %v", reloaded, err)
	}
	if !utils.CheckPassword(reloaded.PasswordHash, "newpass1") {
		t.Fatal("new password should verify against the stored hash")
	}
	if utils.CheckPassword(reloaded.PasswordHash, "secret1") {
		t.Fatal("old password should no longer verify")
	}
}

func TestChangePassword_RequiresMinimumLength(t *testing.T) {
	r, db := userRouter(t)
	u, _ := seedAccount(t, db, "Ana", "ana@test.dev", "secret1")

	w := authedRequest(t, r, u.ID, u.Email, http.MethodPut, "/api/users/me/password", gin.H{
		"current_password": "secret1", "new_password": "abc",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", w.Code)
	}
}

func TestDeleteMe_CascadesAccountData(t *testing.T) {
	r, db := userRouter(t)
	ana, anaPlayer := seedAccount(t, db, "Ana", "ana@test.dev", "secret1")
	rui, ruiPlayer := seedAccount(t, db, "Rui", "rui@test.dev", "secret1")
	m := testutil.SeedMatch(t, db, rui.ID)

	players := player.NewPlayerRepository(db)
	anaMP, _, err := players.EnsureParticipant(m.ID, anaPlayer.ID, nil)
	if err != nil {
		t.Fatalf("enroll ana: %v", err)
	}
	ruiMP, _, err := players.EnsureParticipant(m.ID, ruiPlayer.ID, nil)
	if err != nil {
		t.Fatalf("enroll rui: %v", err)
	}

	g := &game.Game{MatchID: m.ID}
	if err := db.Create(g).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}
	team := &game.Team{GameID: g.ID, Name: "Time A"}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("seed team: %v", err)
	}
	for _, mpID := range []uint{anaMP.ID, ruiMP.ID} {
		if err := db.Create(&game.TeamParticipant{TeamID: team.ID, MatchParticipantID: mpID}).Error; err != nil {
			t.Fatalf("seed team participant: %v", err)
		}
	}
	if err := db.Create(&invite.Invite{MatchID: m.ID, UserID: ana.ID, Status: invite.StatusAccepted}).Error; err != nil {
		t.Fatalf("seed invite: %v", err)
	}
	if err := db.Create(&notification.Notification{UserID: ana.ID, Message: "Convite aceito"}).Error; err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	if err := db.Create(&formation.Slot{MatchID: m.ID, UserID: ana.ID, Side: formation.SideA}).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	w := authedRequest(t, r, ana.ID, ana.Email, http.MethodDelete, "/api/users/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	users := user.NewUserRepository(db)
	if got, err := users.GetByID(ana.ID); err != nil || got != nil {
		t.Fatalf("account should be gone, got %v / %v", got, err)
	}
	if got, err := players.GetByUserID(ana.ID); err != nil || got != nil {
		t.Fatalf("player record should be gone, got %v / %v", got, err)
	}
	for table, want := range map[string]int64{
		"match_participants": 1, // rui's row survives
		"team_participants":  1,
		"invites":            0,
		"notifications":      0,
		"formation_slots":    0,
	} {
		var n int64
		if err := db.Table(table).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != want {
			t.Fatalf("expected %d rows in %s after delete, got %d", want, table, n)
		}
	}

	// Rui's account is untouched.
	if got, err := users.GetByID(rui.ID); err != nil || got == nil {
		t.Fatalf("other account should survive, got %v / %v", got, err)
	}
}
