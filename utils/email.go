package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"medivault/config"
)

// SMTPEmail sends HTML mail through the configured SMTP relay.
type SMTPEmail struct{}

// NewSMTPEmail builds the email provider.
func NewSMTPEmail() *SMTPEmail {
	return &SMTPEmail{}
}

// Send delivers one HTML email. Mirrors the SMS provider's behavior when
// unconfigured: deterministic failure, content logged outside production.
func (e *SMTPEmail) Send(to, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
		if !config.IsProduction() {
			GetLogger().Sugar().Infof("Email (smtp not configured) to %s: %s", to, subject)
		}
		return fmt.Errorf("smtp not configured")
	}

	var msg strings.Builder
	msg.WriteString("From: " + cfg.SMTPFrom + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, cfg.SMTPFrom, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
