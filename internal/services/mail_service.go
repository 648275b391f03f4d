package services

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"boardhub/internal/config"
)

// Mailer delivers verification codes.
type Mailer interface {
	SendVerificationCode(email, code string) error
}

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
	logger   *slog.Logger
}

func NewMailService(conf config.Mail, logger *slog.Logger) *MailService {
	enabled := conf.Host != "" && conf.Port != "" && conf.Username != "" && conf.Password != "" && conf.From != ""
	if !enabled {
		logger.Warn("mail service disabled: missing SMTP settings")
	}

	return &MailService{
		Host:     conf.Host,
		Port:     conf.Port,
		Username: conf.Username,
		Password: conf.Password,
		From:     conf.From,
		Enabled:  enabled,
		logger:   logger,
	}
}

func (s *MailService) send(to []string, subject string, body string) error {
	if !s.Enabled {
		s.logger.Warn("mail not sent, service disabled", "to", to, "subject", subject)
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n"+
		"%s", strings.Join(to, ","), s.From, subject, body))

	if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
		return fmt.Errorf("smtp.SendMail: %w", err)
	}
	s.logger.Info("mail sent", "to", to, "subject", subject)
	return nil
}

func (s *MailService) SendVerificationCode(email, code string) error {
	return s.send([]string{email}, "email verification code", code)
}
