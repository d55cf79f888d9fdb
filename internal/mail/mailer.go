package mail

import (
	"bytes"
	"context"
	"html/template"

	"gopkg.in/gomail.v2"

	"hometeam-go/internal/config"
	"hometeam-go/pkg/logger"
)

var invitationTemplate = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>You're invited to join {{.UnitName}}</h2>
    <p>{{.InviterName}} invited you to join the household <strong>{{.UnitName}}</strong>.</p>
    <p>Sign in to accept or decline the invitation from your pending invitations list.</p>
    <p style="font-size: 12px; color: #7f8c8d;">If you weren't expecting this invitation, you can safely ignore this email.</p>
</body>
</html>`))

// Mailer sends invitation notifications over SMTP. When mail is not
// configured it logs the invitation instead of failing the operation.
type Mailer struct {
	cfg config.SMTPConfig
	log logger.Logger
}

func NewMailer(cfg config.SMTPConfig, log logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log.With("component", "mailer")}
}

func (m *Mailer) InvitationCreated(ctx context.Context, email, unitName, inviterName string) {
	if !m.cfg.Enabled() {
		m.log.Info("invitation created, mail disabled", "email", email, "unit", unitName)
		return
	}

	var body bytes.Buffer
	data := struct {
		UnitName    string
		InviterName string
	}{UnitName: unitName, InviterName: inviterName}
	if err := invitationTemplate.Execute(&body, data); err != nil {
		m.log.InternalError("render invitation email", err, "email", email)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Invitation to join "+unitName)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.log.InternalError("send invitation email", err, "email", email)
		return
	}

	m.log.Info("invitation email sent", "email", email, "unit", unitName)
}
