package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peladeiro-app/api/config"
	"github.com/peladeiro-app/api/internal/auth"
	"github.com/peladeiro-app/api/internal/player"
	"github.com/peladeiro-app/api/internal/testutil"
)

type recordedMail struct {
	Recipient string
	Subject   string
	Body      string
}

type fakeMailer struct {
	sent []recordedMail
}

func (m *fakeMailer) Send(_ context.Context, recipient, subject, body string) error {
	m.sent = append(m.sent, recordedMail{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

func authRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.OpenDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiryMinutes = 5

	mail := &fakeMailer{}
	r := gin.New()
	auth.AuthRoutes(r.Group("/api"), db, mail, cfg)
	return r, db, mail
}

func post(r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_CreatesUserAndPlayer(t *testing.T) {
	r, db, _ := authRouter(t)

	w := post(r, "/api/auth/register", gin.H{
		"name": "Ana", "email": "ana@test.dev", "password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				ID uint `json:"ID"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Token == "" {
		t.Fatal("expected a token in the response")
	}

	p, err := player.NewPlayerRepository(db).GetByUserID(body.Data.User.ID)
	if err != nil || p == nil {
		t.Fatalf("expected linked player record, got %v / %v", p, err)
	}
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	r, _, _ := authRouter(t)

	payload := gin.H{"name": "Ana", "email": "ana@test.dev", "password": "secret1"}
	if w := post(r, "/api/auth/register", payload); w.Code != http.StatusCreated {
		t.Fatalf("first register: %d", w.Code)
	}
	if w := post(r, "/api/auth/register", payload); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestLogin_RightAndWrongPassword(t *testing.T) {
	r, _, _ := authRouter(t)
	post(r, "/api/auth/register", gin.H{"name": "Ana", "email": "ana@test.dev", "password": "secret1"})

	if w := post(r, "/api/auth/login", gin.H{"email": "ana@test.dev", "password": "secret1"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := post(r, "/api/auth/login", gin.H{"email": "ana@test.dev", "password": "wrong"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := post(r, "/api/auth/login", gin.H{"email": "ghost@test.dev", "password": "secret1"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", w.Code)
	}
}

func TestForgotPassword_AlwaysOKAndMailsKnownAccounts(t *testing.T) {
	r, _, mail := authRouter(t)
	post(r, "/api/auth/register", gin.H{"name": "Ana", "email": "ana@test.dev", "password": "secret1"})

	if w := post(r, "/api/auth/forgot-password", gin.H{"email": "ana@test.dev"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(mail.sent) != 1 || mail.sent[0].Recipient != "ana@test.dev" {
		t.Fatalf("expected one recovery mail to ana, got %+v", mail.sent)
	}

	// Unknown addresses get the same answer and no mail.
	if w := post(r, "/api/auth/forgot-password", gin.H{"email": "ghost@test.dev"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown email, got %d", w.Code)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("no mail should go to unknown addresses, got %d", len(mail.sent))
	}
}

func TestForgotPassword_NewRequestReplacesPriorCode(t *testing.T) {
	r, db, _ := authRouter(t)
	post(r, "/api/auth/register", gin.H{"name": "Ana", "email": "ana@test.dev", "password": "secret1"})

	post(r, "/api/auth/forgot-password", gin.H{"email": "ana@test.dev"})
	var first auth.PasswordReset
	if err := db.First(&first).Error; err != nil {
		t.Fatalf("expected stored reset code: %v", err)
	}

	post(r, "/api/auth/forgot-password", gin.H{"email": "ana@test.dev"})

	// Only the latest code survives.
	var resets []auth.PasswordReset
	if err := db.Find(&resets).Error; err != nil {
		t.Fatalf("list resets: %v", err)
	}
	if len(resets) != 1 {
		t.Fatalf("expected a single active code, got %d", len(resets))
	}
	if resets[0].Code == first.Code {
		t.Fatal("expected a fresh code after the second request")
	}

	if w := post(r, "/api/auth/reset-password", gin.H{"code": first.Code, "new_password": "newpass1"}); w.Code != http.StatusBadRequest {
		t.Fatalf("superseded code should be rejected, got %d", w.Code)
	}
	if w := post(r, "/api/auth/reset-password", gin.H{"code": resets[0].Code, "new_password": "newpass1"}); w.Code != http.StatusOK {
		t.Fatalf("latest code should work, got %d: %s", w.Code, w.Body.String())
	}
}

func TestResetPassword_ConsumesCode(t *testing.T) {
	r, db, _ := authRouter(t)
	post(r, "/api/auth/register", gin.H{"name": "Ana", "email": "ana@test.dev", "password": "secret1"})
	post(r, "/api/auth/forgot-password", gin.H{"email": "ana@test.dev"})

	var reset auth.PasswordReset
	if err := db.First(&reset).Error; err != nil {
		t.Fatalf("expected stored reset code: %v", err)
	}

	w := post(r, "/api/auth/reset-password", gin.H{"code": reset.Code, "new_password": "newpass1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// New password works, old one does not.
	if w := post(r, "/api/auth/login", gin.H{"email": "ana@test.dev", "password": "newpass1"}); w.Code != http.StatusOK {
		t.Fatalf("login with new password: %d", w.Code)
	}
	if w := post(r, "/api/auth/login", gin.H{"email": "ana@test.dev", "password": "secret1"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("old password should be rejected, got %d", w.Code)
	}

	// The code is single use.
	if w := post(r, "/api/auth/reset-password", gin.H{"code": reset.Code, "new_password": "again1"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on reuse, got %d", w.Code)
	}
}

func TestResetPassword_UnknownCode(t *testing.T) {
	r, _, _ := authRouter(t)
	if w := post(r, "/api/auth/reset-password", gin.H{"code": "nope", "new_password": "whatever1"}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
