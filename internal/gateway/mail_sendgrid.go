package gateway

import (
	"context"
	"fmt"

	"doctor-finder/config"
	domainGateway "doctor-finder/internal/domain/gateway"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

type sendGridMailer struct {
	cfg    config.MailConfig
	log    *logrus.Logger
	client *sendgrid.Client
}

// NewSendGridMailer sends the mail through the SendGrid v3 API.
func NewSendGridMailer(cfg config.MailConfig, log *logrus.Logger) domainGateway.MailDispatch {
	return &sendGridMailer{cfg: cfg, log: log, client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}
}

func (m *sendGridMailer) SendOTP(ctx context.Context, to, code string) error {
	if m.cfg.SendGridAPIKey == "" || m.cfg.From == "" {
		return fmt.Errorf("sendgrid is not configured")
	}

	msg, err := ComposeOTPMessage(code)
	if err != nil {
		return err
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(m.cfg.FromName, m.cfg.From),
		msg.Subject,
		mail.NewEmail("", to),
		msg.Plain,
		msg.HTML,
	)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		m.log.Warnf("Failed to send OTP mail via SendGrid to %s: %+v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		m.log.Warnf("SendGrid returned status %d for %s: %s", response.StatusCode, to, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}
