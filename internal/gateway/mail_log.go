package gateway

import (
	"context"
	"time"

	domainGateway "doctor-finder/internal/domain/gateway"

	"github.com/sirupsen/logrus"
)

type logMailer struct {
	log     *logrus.Logger
	latency time.Duration
}

// NewLogMailer writes the composed mail to the log instead of sending it.
func NewLogMailer(log *logrus.Logger, latency time.Duration) domainGateway.MailDispatch {
	return &logMailer{log: log, latency: latency}
}

func (m *logMailer) SendOTP(ctx context.Context, to, code string) error {
	msg, err := ComposeOTPMessage(code)
	if err != nil {
		return err
	}
	if err := simulateLatency(ctx, m.latency); err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{
		"to":      to,
		"subject": msg.Subject,
	}).Info(msg.Plain)
	return nil
}
