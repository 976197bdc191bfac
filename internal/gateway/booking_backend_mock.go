package gateway

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"doctor-finder/internal/domain/entity"
	domainGateway "doctor-finder/internal/domain/gateway"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type mockBookingBackend struct {
	log     *logrus.Logger
	latency time.Duration
}

// NewMockBookingBackend accepts every booking after latency.
func NewMockBookingBackend(log *logrus.Logger, latency time.Duration) domainGateway.BookingBackend {
	return &mockBookingBackend{log: log, latency: latency}
}

func (b *mockBookingBackend) Book(ctx context.Context, req entity.BookingRequest) (*entity.Appointment, error) {
	if err := simulateLatency(ctx, b.latency); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ID:          uuid.New().String(),
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		Datetime:    req.Datetime(),
		BookingCode: generateBookingCode(req.Date),
		Status:      entity.AppointmentStatusScheduled,
	}

	b.log.Infof("Appointment booked: doctor=%s, datetime=%s, code=%s", req.DoctorID, appointment.Datetime.Format(time.RFC3339), appointment.BookingCode)
	return appointment, nil
}

// generateBookingCode generates a booking code: BK-YYYYMMDD-XXXXXX
func generateBookingCode(date time.Time) string {
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return fmt.Sprintf("BK-%s-%06X", date.Format("20060102"), randomBytes)
}
