package digest

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/wyndham/grant-radar/internal/config"
)

// Send delivers the HTML body over SMTP. The server's STARTTLS offer is
// honored by net/smtp; auth is skipped when no user is configured.
func Send(htmlBody, subject string, cfg *config.Config) error {
	if cfg.SMTP.Host == "" {
		return fmt.Errorf("SMTP_HOST is not set")
	}
	if len(cfg.DigestTo) == 0 {
		return fmt.Errorf("DIGEST_TO is not set")
	}
	from := cfg.DigestFrom
	if from == "" {
		return fmt.Errorf("DIGEST_FROM is not set")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(cfg.DigestTo, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	var auth smtp.Auth
	if cfg.SMTP.User != "" {
		auth = smtp.PlainAuth("", cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.Host)
	}

	if err := smtp.SendMail(addr, auth, from, cfg.DigestTo, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending digest: %w", err)
	}
	return nil
}
