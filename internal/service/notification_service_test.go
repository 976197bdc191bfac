package service

import (
	"context"
	"io"
	"testing"

	"doctor-finder/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNotificationServiceQueuesPerClient(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	notifier := NewNotificationService(log)
	ctx := context.Background()

	notifier.Success(ctx, "a", "Appointment booked successfully!")
	notifier.Failure(ctx, "a", "Failed to resend OTP")
	notifier.Success(ctx, "b", "other")

	drained := notifier.Drain("a")
	assert.Len(t, drained, 2)
	assert.Equal(t, entity.NotificationSuccess, drained[0].Kind)
	assert.Equal(t, entity.NotificationError, drained[1].Kind)
	assert.Empty(t, notifier.Drain("a"))

	notifier.Forget("b")
	assert.Empty(t, notifier.Drain("b"))
}

func TestNotificationServiceBoundsQueue(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	notifier := NewNotificationService(log)

	for i := 0; i < maxQueuedNotifications+5; i++ {
		notifier.Success(context.Background(), "a", "msg")
	}
	assert.Len(t, notifier.Drain("a"), maxQueuedNotifications)
}
