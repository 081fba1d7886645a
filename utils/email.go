package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/meinhoongagan/taskr/config"
)

// Sender delivers a single HTML email.
type Sender interface {
	SendEmail(to, subject, body string) error
}

// Mailer sends mail through an SMTP relay.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		from:   cfg.User,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (m *Mailer) SendEmail(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
