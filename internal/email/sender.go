package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tntduc/ai-news-digest/internal/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// Sender delivers a composed email to a single recipient.
type Sender interface {
	Send(ctx context.Context, to string, content Content) error
	// Transport names the delivery mechanism, for logging and metrics.
	Transport() string
}

// NewSender picks the delivery transport from config: Resend when an API
// key is configured, SMTP otherwise.
func NewSender(cfg *config.Config, logger zerolog.Logger) (Sender, error) {
	if cfg.ResendAPIKey != "" {
		return &resendSender{
			apiKey: cfg.ResendAPIKey,
			from:   cfg.FromEmail,
			client: &http.Client{Timeout: 30 * time.Second},
			logger: logger.With().Str("transport", "resend").Logger(),
		}, nil
	}

	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("email: neither RESEND_API_KEY nor SMTP_HOST configured")
	}

	return &smtpSender{
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		host:     cfg.SMTPHost,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.FromEmail,
		logger:   logger.With().Str("transport", "smtp").Logger(),
	}, nil
}

type smtpSender struct {
	addr     string
	host     string
	username string
	password string
	from     string
	logger   zerolog.Logger
}

func (s *smtpSender) Transport() string { return "smtp" }

func (s *smtpSender) Send(ctx context.Context, to string, content Content) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildMIMEMessage(s.from, to, content)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	s.logger.Debug().Str("to", to).Msg("sending email over SMTP")

	if err := smtp.SendMail(s.addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	return nil
}

// buildMIMEMessage assembles a multipart/alternative message with text and
// HTML parts so clients can pick their preferred rendering.
func buildMIMEMessage(from, to string, content Content) ([]byte, error) {
	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	var msg bytes.Buffer

	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", content.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", writer.Boundary())
	msg.WriteString("\r\n")

	for _, part := range []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=utf-8", content.TextBody},
		{"text/html; charset=utf-8", content.HTMLBody},
	} {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", part.contentType)
		header.Set("Content-Transfer-Encoding", "8bit")

		w, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}

		if _, err := io.WriteString(w, part.body); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	// Part bodies use bare LF while the multipart framing is already CRLF;
	// normalize everything to CRLF as SMTP requires.
	normalized := strings.ReplaceAll(body.String(), "\r\n", "\n")
	msg.WriteString(strings.ReplaceAll(normalized, "\n", "\r\n"))

	return msg.Bytes(), nil
}

type resendSender struct {
	apiKey string
	from   string
	client *http.Client
	logger zerolog.Logger
}

func (r *resendSender) Transport() string { return "resend" }

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

func (r *resendSender) Send(ctx context.Context, to string, content Content) error {
	payload, err := json.Marshal(resendRequest{
		From:    r.from,
		To:      []string{to},
		Subject: content.Subject,
		HTML:    content.HTMLBody,
		Text:    content.TextBody,
	})
	if err != nil {
		return fmt.Errorf("marshal resend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build resend request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	r.logger.Debug().Str("to", to).Msg("sending email via Resend")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend responded %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return nil
}
