// Package resend delivers contact-form messages through the Resend
// transactional email HTTP API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"tradenexus/internal/domain"
	"tradenexus/internal/ports"
)

const defaultBaseURL = "https://api.resend.com"

// Config holds configuration for the Resend notifier.
type Config struct {
	APIKey     string
	From       string // Sender identity, e.g. "TradeNexus <onboarding@resend.dev>"
	To         string // Destination inbox for contact messages
	Logger     ports.Logger
	BaseURL    string       // Overridable for tests; defaults to the public API
	HTTPClient *http.Client // Optional; defaults to a 10s-timeout client
}

// Notifier implements ports.ContactNotifier against the Resend API.
type Notifier struct {
	apiKey  string
	from    string
	to      string
	baseURL string
	client  *http.Client
	logger  ports.Logger
}

// New creates a new Resend notifier.
func New(cfg Config) (*Notifier, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Resend notifier: %w", ports.ErrConfigurationError)
	}
	if cfg.APIKey == "" || cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("Resend API key, from, and to are required: %w", ports.ErrConfigurationError)
	}

	n := &Notifier{
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		to:      cfg.To,
		baseURL: cfg.BaseURL,
		client:  cfg.HTTPClient,
		logger:  cfg.Logger,
	}
	if n.baseURL == "" {
		n.baseURL = defaultBaseURL
	}
	if n.client == nil {
		n.client = &http.Client{Timeout: 10 * time.Second}
	}
	return n, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// SendContact forwards one contact-form submission as an email, with the
// submitter's address as reply-to.
func (n *Notifier) SendContact(ctx context.Context, msg domain.ContactMessage) error {
	payload := sendRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: fmt.Sprintf("New contact form message from %s", msg.Name),
		HTML:    renderBody(msg),
		ReplyTo: msg.Email,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode contact email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build contact email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrNotificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%w: resend returned status %d: %s", ports.ErrNotificationFailed, resp.StatusCode, detail)
	}

	n.logger.Debug(ctx, "Contact email delivered", map[string]interface{}{"replyTo": msg.Email})
	return nil
}

func renderBody(msg domain.ContactMessage) string {
	return fmt.Sprintf(
		"<h2>New Contact Form Submission</h2>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Message:</strong></p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Message),
	)
}
