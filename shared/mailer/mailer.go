package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings. An empty Host disables sending entirely.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"     envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// Enabled reports whether the configuration is complete enough to send mail.
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Mailer represents an email sender. A nil Mailer is valid and drops every
// message, so callers do not need to branch on whether SMTP is configured.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

// Email represents an email message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// NewMailer creates a Mailer from the given configuration. It returns nil
// when the configuration is incomplete.
func NewMailer(cfg Config) *Mailer {
	if !cfg.Enabled() {
		return nil
	}

	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send sends a single email.
func (m *Mailer) Send(email Email) error {
	if m == nil {
		return nil
	}
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	return m.dialer.DialAndSend(msg)
}

// SendSimple sends a plain text email.
func (m *Mailer) SendSimple(to []string, subject, body string) error {
	return m.Send(Email{
		To:      to,
		Subject: subject,
		Body:    body,
	})
}
