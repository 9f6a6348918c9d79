package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/peladeiro-app/api/internal/auth"
	"github.com/peladeiro-app/api/internal/formation"
	"github.com/peladeiro-app/api/internal/game"
	"github.com/peladeiro-app/api/internal/invite"
	"github.com/peladeiro-app/api/internal/lookup"
	"github.com/peladeiro-app/api/internal/match"
	"github.com/peladeiro-app/api/internal/notification"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/user"
)

// OpenDB returns a fresh in-memory sqlite database with the full schema
// migrated. Each call gets its own database, so tests stay independent.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One pooled connection, or each session would get its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&user.User{}, &user.UserPosition{}, &auth.PasswordReset{},
		&lookup.State{}, &lookup.City{}, &lookup.MatchType{}, &lookup.Position{},
		&match.Match{},
		&player.Player{}, &player.MatchParticipant{},
		&invite.Invite{},
		&game.Game{}, &game.Team{}, &game.TeamParticipant{},
		&formation.Slot{},
		&notification.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NoopSender satisfies notification.Sender without touching the network.
type NoopSender struct {
	Sent []SentPush
}

type SentPush struct {
	UserID uint
	Title  string
	Body   string
}

func (s *NoopSender) Send(userID uint, title, body string, data map[string]string) {
	s.Sent = append(s.Sent, SentPush{UserID: userID, Title: title, Body: body})
}

// SeedUser inserts a user with a fixed bcrypt-free placeholder hash.
func SeedUser(t *testing.T, db *gorm.DB, name, email string) *user.User {
	t.Helper()
	u := &user.User{Name: name, Email: email, PasswordHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

// SeedMatch inserts a minimal awaiting match owned by ownerID.
func SeedMatch(t *testing.T, db *gorm.DB, ownerID uint) *match.Match {
	t.Helper()
	m := &match.Match{
		Location:  "Quadra Central",
		OwnerID:   ownerID,
		Open:      true,
		Date:      "2026-09-05",
		StartTime: "19:00",
		Status:    match.StatusAwaiting,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return m
}
