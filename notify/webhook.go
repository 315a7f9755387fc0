package notify

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"

	"clementus360/mood-tracker/types"
)

const webhookIssuer = "mood-tracker"

// WebhookNotifier posts alerts as JSON. When a secret is set each request
// carries an HS256 token whose body_sha256 claim binds it to the payload.
type WebhookNotifier struct {
	url        string
	secret     []byte
	httpClient *http.Client
	now        func() time.Time
}

func NewWebhookNotifier(url, secret string) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		secret:     []byte(secret),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (n *WebhookNotifier) Name() string { return "webhook" }

func (n *WebhookNotifier) Send(ctx context.Context, payload types.AlertPayload, recipients []string) error {
	body, err := json.Marshal(alertEvent{Recipients: recipients, Alert: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if len(n.secret) > 0 {
		token, err := n.sign(payload, body)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

func (n *WebhookNotifier) sign(payload types.AlertPayload, body []byte) (string, error) {
	sum := sha256.Sum256(body)
	now := n.now()
	claims := jwt.MapClaims{
		"iss":         webhookIssuer,
		"sub":         payload.AlertID,
		"iat":         now.Unix(),
		"exp":         now.Add(5 * time.Minute).Unix(),
		"status":      string(payload.Status),
		"body_sha256": hex.EncodeToString(sum[:]),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(n.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign webhook token: %w", err)
	}
	return signed, nil
}
