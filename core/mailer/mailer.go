package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"campus-events-api/core/config"
	"campus-events-api/core/logger"
)

// Mailer sends transactional email over plain SMTP. When SMTP is not
// configured the send is skipped, matching the legacy behaviour of running
// without an email account in development.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.User != ""
}

// Send delivers a single HTML email.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		logger.Info("Mailer:Send skipped, SMTP not configured", "to", to, "subject", subject)
		return nil
	}

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.User, []string{to}, msg.Bytes()); err != nil {
		logger.Error("Mailer:Send:Error:", err)
		return err
	}

	logger.Info("Mailer:Send delivered", "to", to, "subject", subject)
	return nil
}

// SendTemplate renders tmpl with data and delivers the result.
func (m *Mailer) SendTemplate(to, subject, tmpl string, data any) error {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return err
	}

	return m.Send(to, subject, body.String())
}
