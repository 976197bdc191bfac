package converter

import (
	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// AuthStateToResponse converts an AuthState to AuthStateResponse DTO
func AuthStateToResponse(state entity.AuthState) *dto.AuthStateResponse {
	response := &dto.AuthStateResponse{
		User:            UserToResponse(state.User),
		IsAuthenticated: state.IsAuthenticated,
	}
	if state.Token != nil {
		token := *state.Token
		response.Token = &token
	}
	return response
}

// NotificationsToResponse converts queued notifications to NotificationListResponse DTO
func NotificationsToResponse(notifications []entity.Notification) *dto.NotificationListResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = dto.NotificationResponse{
			Kind:      string(n.Kind),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}
	}
	return &dto.NotificationListResponse{Notifications: responses}
}
