// Package mailer delivers feedback notifications to the school office
// over an SMTP relay. Delivery is strictly best-effort: a missing
// configuration disables it and a failed send is only logged.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"school-site-backend/internal/models"
)

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	adminTo  string
	log      *zap.SugaredLogger
}

func NewSMTPMailer(host string, port int, username, password, from, adminTo string, log *zap.SugaredLogger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		adminTo:  adminTo,
		log:      log,
	}
}

// Enabled reports whether credentials are configured. Environments
// without mail simply skip the send.
func (m *SMTPMailer) Enabled() bool {
	return m.host != "" && m.username != "" && m.adminTo != ""
}

// SendFeedbackNotification composes and sends the notification for one
// submission. markReadURL is the token-gated one-click link.
func (m *SMTPMailer) SendFeedbackNotification(fb *models.Feedback, markReadURL string) error {
	if !m.Enabled() {
		return nil
	}
	subject, body := BuildNotification(fb, markReadURL)

	var msg strings.Builder
	msg.WriteString("MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n")
	fmt.Fprintf(&msg, "From: School Website <%s>\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", m.adminTo)
	fmt.Fprintf(&msg, "Subject: %s\r\n\r\n", subject)
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{m.adminTo}, []byte(msg.String())); err != nil {
		return err
	}
	m.log.Infow("notification email sent", "feedback_id", fb.ID.Hex(), "to", m.adminTo)
	return nil
}
