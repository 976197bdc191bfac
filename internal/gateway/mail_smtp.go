package gateway

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"doctor-finder/config"
	domainGateway "doctor-finder/internal/domain/gateway"

	"github.com/sirupsen/logrus"
)

type smtpMailer struct {
	cfg  config.MailConfig
	log  *logrus.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer sends the HTML mail through an authenticated SMTP relay.
func NewSMTPMailer(cfg config.MailConfig, log *logrus.Logger) domainGateway.MailDispatch {
	return &smtpMailer{cfg: cfg, log: log, send: smtp.SendMail}
}

func (m *smtpMailer) SendOTP(ctx context.Context, to, code string) error {
	msg, err := ComposeOTPMessage(code)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.SMTPUser
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", mime.QEncoding.Encode("utf-8", m.cfg.FromName)+" <"+from+">")
	fmt.Fprintf(&body, "To: %s\r\n", to)
	fmt.Fprintf(&body, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	body.WriteString(msg.HTML)

	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	if err := m.send(addr, auth, from, []string{to}, []byte(body.String())); err != nil {
		m.log.Warnf("Failed to send OTP mail to %s: %+v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
