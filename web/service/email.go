package service

import (
	"reviewhub/config"
	"reviewhub/logger"

	"gopkg.in/gomail.v2"
)

// Sender dispatches transactional mail. Implementations must report
// delivery failure: signup aborts when the confirmation code cannot be
// sent.
type Sender interface {
	Send(to, subject, body string) error
}

// NewSenderFromConfig returns an SMTP sender when REVIEW_SMTP_HOST is
// set and the console sender otherwise (the development setup).
func NewSenderFromConfig() Sender {
	if config.GetSMTPHost() == "" {
		return &ConsoleSender{}
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(
			config.GetSMTPHost(),
			config.GetSMTPPort(),
			config.GetSMTPUser(),
			config.GetSMTPPassword(),
		),
		from: config.GetEmailFrom(),
	}
}

// SMTPSender delivers mail through the configured SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// ConsoleSender writes mail to the log instead of delivering it.
type ConsoleSender struct{}

func (s *ConsoleSender) Send(to, subject, body string) error {
	logger.Infof("mail to %s: %s: %s", to, subject, body)
	return nil
}
