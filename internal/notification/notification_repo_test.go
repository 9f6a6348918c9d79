package notification_test

import (
	"testing"
	"time"

	"github.com/peladeiro-app/api/internal/notification"
	"github.com/peladeiro-app/api/internal/testutil"
)

func TestListByUser_NewestFirst(t *testing.T) {
	db := testutil.OpenDB(t)
	u := testutil.SeedUser(t, db, "Ana", "ana@test.dev")
	other := testutil.SeedUser(t, db, "Bia", "bia@test.dev")

	repo := notification.NewNotificationRepository(db)
	for _, msg := range []string{"primeira", "segunda"} {
		if err := repo.Create(&notification.Notification{UserID: u.ID, Message: msg, SentAt: time.Now()}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Create(&notification.Notification{UserID: other.ID, Message: "alheia", SentAt: time.Now()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := repo.ListByUser(u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	if list[0].Message != "segunda" {
		t.Fatalf("expected newest first, got %q", list[0].Message)
	}
}

func TestMarkSeen_OwnRowsOnly(t *testing.T) {
	db := testutil.OpenDB(t)
	u := testutil.SeedUser(t, db, "Ana", "ana@test.dev")
	other := testutil.SeedUser(t, db, "Bia", "bia@test.dev")

	repo := notification.NewNotificationRepository(db)
	n := &notification.Notification{UserID: u.ID, Message: "oi", SentAt: time.Now()}
	if err := repo.Create(n); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := repo.MarkSeen(n.ID, other.ID)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if ok {
		t.Fatal("another user's notification must not be markable")
	}

	ok, err = repo.MarkSeen(n.ID, u.ID)
	if err != nil || !ok {
		t.Fatalf("expected own row marked, got %v / %v", ok, err)
	}

	list, _ := repo.ListByUser(u.ID)
	if !list[0].Seen {
		t.Fatal("seen flag not persisted")
	}
}
