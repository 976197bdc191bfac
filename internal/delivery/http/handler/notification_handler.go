package handler

import (
	"net/http"

	"doctor-finder/internal/converter"
	"doctor-finder/internal/service"
	"doctor-finder/pkg/response"
)

type NotificationHandler struct {
	notifier service.Notifier
}

func NewNotificationHandler(notifier service.Notifier) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
	}
}

// Drain returns and clears the client's pending notifications.
func (h *NotificationHandler) Drain(w http.ResponseWriter, r *http.Request) {
	notifications := h.notifier.Drain(clientID(r))
	response.Success(w, http.StatusOK, "Notifications retrieved successfully", converter.NotificationsToResponse(notifications))
}
