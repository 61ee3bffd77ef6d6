package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pomo-hub/internal/logger"
)

const webhookUsername = "PomoHub"

// Webhook posts messages to a Discord-style webhook URL as
// {"content": ..., "username": "PomoHub"}.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Webhook) Notify(ctx context.Context, message string) {
	payload, err := json.Marshal(map[string]string{
		"content":  message,
		"username": webhookUsername,
	})
	if err != nil {
		logger.Warn("webhook payload encode failed", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		logger.Warn("webhook request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		logger.Warn("webhook delivery failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Warn("webhook delivery rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("url", w.url))
	}
}
