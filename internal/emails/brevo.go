package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender `json:"sender"`
	To          []BrevoTo   `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Sender sends transactional emails for verification decisions. Nil = no-op.
type Sender interface {
	SendPropertyVerified(ctx context.Context, toEmail, title, class string) error
	SendPropertyRejected(ctx context.Context, toEmail, title, reason string) error
}

// BrevoClient sends emails via the Brevo (Sendinblue) API.
// Env: SENDINBLUE_API_KEY, MAIL_FROM. An empty API key disables sending.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@landeed.com"
}

// send sends one email via Brevo API.
func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: "Landeed"},
		To:          []BrevoTo{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendPropertyVerified notifies the owner that their listing went live.
func (c *BrevoClient) SendPropertyVerified(ctx context.Context, toEmail, title, class string) error {
	if c.APIKey == "" {
		return nil
	}
	content := fmt.Sprintf(`
    <h1>Your property is live</h1>
    <p>Your property <strong>%s</strong> has been verified and published as a %s listing.</p>
    <p>Buyers and renters can now find it in the marketplace.</p>`, title, class)
	return c.send(ctx, toEmail, "Your property has been verified", EmailLayout(content))
}

// SendPropertyRejected notifies the owner of a rejection with the reason.
func (c *BrevoClient) SendPropertyRejected(ctx context.Context, toEmail, title, reason string) error {
	if c.APIKey == "" {
		return nil
	}
	content := fmt.Sprintf(`
    <h1>Your property was not approved</h1>
    <p>Your property <strong>%s</strong> could not be verified.</p>
    <p>Reason: %s</p>
    <p>You can edit the listing and resubmit it for review at any time.</p>`, title, reason)
	return c.send(ctx, toEmail, "Your property listing needs changes", EmailLayout(content))
}
