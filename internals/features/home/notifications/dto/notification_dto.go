package dto

import (
	"time"

	"github.com/google/uuid"

	"stepup_backend/internals/features/home/notifications/model"
)

type NotificationResponse struct {
	NotificationID          uuid.UUID  `json:"notification_id"`
	NotificationTitle       string     `json:"notification_title"`
	NotificationDescription string     `json:"notification_description"`
	NotificationType        int        `json:"notification_type"`
	NotificationTags        []string   `json:"notification_tags"`
	NotificationCreatedAt   time.Time  `json:"notification_created_at"`
	ReadAt                  *time.Time `json:"read_at,omitempty"`
}

func ToNotificationResponse(n *model.NotificationModel, readAt *time.Time) NotificationResponse {
	return NotificationResponse{
		NotificationID:          n.NotificationID,
		NotificationTitle:       n.NotificationTitle,
		NotificationDescription: n.NotificationDescription,
		NotificationType:        n.NotificationType,
		NotificationTags:        n.NotificationTags,
		NotificationCreatedAt:   n.NotificationCreatedAt,
		ReadAt:                  readAt,
	}
}
