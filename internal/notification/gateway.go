package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GatewayTransport posts messages to an external messaging gateway.
type GatewayTransport struct {
	url    string
	token  string
	client *http.Client
}

func NewGatewayTransport(url, token string) *GatewayTransport {
	return &GatewayTransport{
		url:   url,
		token: token,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (t *GatewayTransport) Send(ctx context.Context, phone, text string) error {
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": text,
	})
	if err != nil {
		return fmt.Errorf("encoding gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	return nil
}

// NopTransport drops every message. Used when no gateway is configured.
type NopTransport struct{}

func (NopTransport) Send(ctx context.Context, phone, text string) error {
	return nil
}
