package service

import (
	"context"
	"sync"
	"time"

	"doctor-finder/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// maxQueuedNotifications bounds the queue of a client that never drains it.
const maxQueuedNotifications = 20

// Notifier receives success and failure signals and queues them per client.
type Notifier interface {
	Success(ctx context.Context, clientID, message string)
	Failure(ctx context.Context, clientID, message string)
	Drain(clientID string) []entity.Notification
	Forget(clientID string)
}

type notificationService struct {
	log *logrus.Logger
	now func() time.Time

	mu     sync.Mutex
	queues map[string][]entity.Notification
}

func NewNotificationService(log *logrus.Logger) Notifier {
	return &notificationService{
		log:    log,
		now:    time.Now,
		queues: make(map[string][]entity.Notification),
	}
}

func (s *notificationService) Success(ctx context.Context, clientID, message string) {
	s.push(clientID, entity.NotificationSuccess, message)
}

func (s *notificationService) Failure(ctx context.Context, clientID, message string) {
	s.push(clientID, entity.NotificationError, message)
}

func (s *notificationService) push(clientID string, kind entity.NotificationKind, message string) {
	s.log.WithFields(logrus.Fields{"client_id": clientID, "kind": kind}).Info(message)

	s.mu.Lock()
	defer s.mu.Unlock()

	queue := append(s.queues[clientID], entity.Notification{
		Kind:      kind,
		Message:   message,
		CreatedAt: s.now().UTC(),
	})
	if len(queue) > maxQueuedNotifications {
		queue = queue[len(queue)-maxQueuedNotifications:]
	}
	s.queues[clientID] = queue
}

// Drain returns and clears the queued notifications of a client, oldest first.
func (s *notificationService) Drain(clientID string) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.queues[clientID]
	delete(s.queues, clientID)
	if queue == nil {
		return []entity.Notification{}
	}
	return queue
}

func (s *notificationService) Forget(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.queues, clientID)
}
