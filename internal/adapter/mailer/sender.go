// Package mailer submits templated messages to the transactional-email relay.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Identity is one preconfigured service/template/key triple of the relay.
type Identity struct {
	ServiceID  string `json:"service_id"`
	TemplateID string `json:"template_id"`
	UserID     string `json:"user_id"`
}

// ProviderError is a non-200 answer from the email relay.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail relay: %s (status %d)", e.Message, e.StatusCode)
}

// Sender delivers one templated message.
type Sender interface {
	Send(ctx context.Context, id Identity, params map[string]string) error
}

// HTTPSender implements Sender against the relay's REST endpoint.
type HTTPSender struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSender builds a sender for a relay endpoint.
func NewHTTPSender(endpoint string, logger *slog.Logger) (*HTTPSender, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse mailer endpoint: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mailer endpoint must be absolute")
	}
	return &HTTPSender{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send submits one message. Anything but HTTP 200 is surfaced as a
// *ProviderError carrying the relay's message.
func (s *HTTPSender) Send(ctx context.Context, id Identity, params map[string]string) error {
	if id.ServiceID == "" || id.TemplateID == "" || id.UserID == "" {
		return fmt.Errorf("mail identity is not configured")
	}

	payload, err := json.Marshal(sendRequest{
		ServiceID:      id.ServiceID,
		TemplateID:     id.TemplateID,
		UserID:         id.UserID,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error("mail relay refused message",
			slog.Int("status", resp.StatusCode),
			slog.String("template", id.TemplateID),
		)
		return &ProviderError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
	}
	return nil
}
