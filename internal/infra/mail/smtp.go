package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/infra/config"
)

// SMTPMailer delivers mail through a configured SMTP relay. With
// tls_enabled the connection must upgrade via STARTTLS before any
// credentials are sent; with it disabled the mailer talks plaintext,
// which suits local capture relays like MailHog.
type SMTPMailer struct {
	cfg config.MailSettings
}

// NewSMTPMailer constructs a mailer for the provided relay settings.
func NewSMTPMailer(cfg config.MailSettings) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, fmt.Errorf("mail host and port are required")
	}
	if cfg.From == "" && cfg.Username == "" {
		return nil, fmt.Errorf("mail sender address is required")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send dispatches a single message. The context is consulted before
// dialing; net/smtp itself does not support cancellation mid-send.
func (m *SMTPMailer) Send(ctx context.Context, msg port.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("recipient is required")
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer client.Close()

	if m.cfg.TLSEnabled {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMessage(from, msg)); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}

func buildMessage(from string, msg port.MailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

var _ port.Mailer = (*SMTPMailer)(nil)
