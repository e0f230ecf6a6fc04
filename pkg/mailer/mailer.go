// Package mailer wraps the SMTP client used for admin notifications.
package mailer

import (
	"errors"

	"gopkg.in/gomail.v2"
)

// Config contains SMTP connection parameters.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends plain-text notification mail through a configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New constructs a Mailer. Returns an error when the config is incomplete so
// the caller can run with notifications disabled.
func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("smtp host and from address are required")
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, nil
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
