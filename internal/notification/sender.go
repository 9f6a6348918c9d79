package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"
)

// Sender delivers a push message to a user and records the audit row. Push
// failures are logged, never surfaced: workflows that notify must not fail
// because the gateway did.
type Sender interface {
	Send(userID uint, title, body string, data map[string]string)
}

// TokenSource resolves a user's registered device token.
type TokenSource interface {
	GetDeviceToken(userID uint) (string, error)
}

// PushSender posts Expo-style push messages to a gateway.
type PushSender struct {
	repo       NotificationRepository
	tokens     TokenSource
	gatewayURL string
	client     *http.Client
}

func NewPushSender(db *gorm.DB, tokens TokenSource, gatewayURL string) *PushSender {
	return &PushSender{
		repo:       NewNotificationRepository(db),
		tokens:     tokens,
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type pushPayload struct {
	To    string            `json:"to"`
	Sound string            `json:"sound"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

func (s *PushSender) Send(userID uint, title, body string, data map[string]string) {
	// Audit first: the row exists independently of delivery.
	if err := s.repo.Create(&Notification{UserID: userID, Message: body, SentAt: time.Now()}); err != nil {
		log.Printf("notification: failed to record audit row for user %d: %v", userID, err)
	}

	deviceToken, err := s.tokens.GetDeviceToken(userID)
	if err != nil {
		log.Printf("notification: failed to look up device token for user %d: %v", userID, err)
		return
	}
	if deviceToken == "" {
		return
	}

	if err := s.post(pushPayload{To: deviceToken, Sound: "default", Title: title, Body: body, Data: data}); err != nil {
		log.Printf("notification: push to user %d failed: %v", userID, err)
	}
}

func (s *PushSender) post(payload pushPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.gatewayURL, "application/json", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push gateway returned %s", resp.Status)
	}
	return nil
}
