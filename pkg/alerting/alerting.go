// Package alerting posts operational alerts (degraded delivery channels,
// teardown failures) to a Discord webhook. The alerter is optional: a nil
// *Alerter is safe to call and does nothing.
package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"resto-notify/pkg/log"
)

const (
	webhookURL       = "https://discord.com/api/webhooks/%s/%s"
	defaultTimeout   = 10 * time.Second
	defaultRetries   = 2
	defaultRetryWait = 2 * time.Second
)

// Alerter sends webhook alerts.
type Alerter struct {
	l          log.Logger
	id         string
	token      string
	retryCount int
	retryDelay time.Duration
	client     *http.Client
}

type webhookPayload struct {
	Content string `json:"content"`
}

// New creates an Alerter for the given webhook credentials.
func New(l log.Logger, id, token string) (*Alerter, error) {
	if id == "" || token == "" {
		return nil, errors.New("webhook id and token are required")
	}

	return &Alerter{
		l:          l,
		id:         id,
		token:      token,
		retryCount: defaultRetries,
		retryDelay: defaultRetryWait,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

// Alert posts a message. Failures are logged and returned but callers treat
// alerting as best effort.
func (a *Alerter) Alert(ctx context.Context, title, message string) error {
	if a == nil {
		return nil
	}

	payload := webhookPayload{
		Content: fmt.Sprintf("**%s**\n%s", title, message),
	}

	var lastErr error
	for attempt := 0; attempt <= a.retryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(a.retryDelay)
		}

		lastErr = a.send(ctx, payload)
		if lastErr == nil {
			return nil
		}
		a.l.Warnf(ctx, "pkg.alerting.Alert: attempt %d failed: %v", attempt+1, lastErr)
	}

	return fmt.Errorf("failed after %d attempts, last error: %w", a.retryCount+1, lastErr)
}

func (a *Alerter) send(ctx context.Context, payload webhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf(webhookURL, a.id, a.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
