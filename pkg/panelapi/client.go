package panelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resto-notify/pkg/log"
)

type client struct {
	l          log.Logger
	cfg        Config
	httpClient *http.Client
}

type tokenBody struct {
	Token string `json:"token"`
}

func (c *client) RegisterToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	return c.send(ctx, http.MethodPost, "/notifications/register-token", tokenBody{Token: token})
}

func (c *client) RevokeToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrTokenRequired
	}

	// Revocation runs during teardown; a transient failure here would leave
	// a stale registration behind, so it gets the retry treatment.
	var lastErr error
	for attempt := 0; attempt <= c.cfg.RetryCount; attempt++ {
		if attempt > 0 {
			c.l.Infof(ctx, "pkg.panelapi.RevokeToken: retrying attempt %d/%d", attempt, c.cfg.RetryCount)
			time.Sleep(c.cfg.RetryDelay)
		}

		lastErr = c.send(ctx, http.MethodDelete, "/notifications/register-token", tokenBody{Token: token})
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("failed after %d attempts, last error: %w", c.cfg.RetryCount+1, lastErr)
}

func (c *client) MarkSeen(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return ErrIDRequired
	}
	path := "/notifications/" + url.PathEscape(notificationID) + "/seen"
	return c.send(ctx, http.MethodPut, path, nil)
}

func (c *client) send(ctx context.Context, method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.cfg.TokenSource != nil {
		if token := c.cfg.TokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
