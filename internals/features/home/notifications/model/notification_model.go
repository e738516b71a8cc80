package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Notification types (handled as an enum in code)
const (
	NotificationTypeLessonSubmitted  = 1
	NotificationTypePromotionReady   = 2
	NotificationTypePromotionOutcome = 3
)

type NotificationModel struct {
	NotificationID          uuid.UUID      `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationTitle       string         `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationDescription string         `gorm:"column:notification_description;type:text" json:"notification_description"`
	NotificationType        int            `gorm:"column:notification_type;not null" json:"notification_type"`
	NotificationCentreID    *uuid.UUID     `gorm:"column:notification_centre_id;type:uuid" json:"notification_centre_id"` // nullable
	NotificationTags        pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationCreatedAt   time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt   time.Time      `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

// NotificationUserModel is the per-recipient delivery + read state.
type NotificationUserModel struct {
	NotificationUserID             uuid.UUID  `gorm:"column:notification_user_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_user_id"`
	NotificationUserNotificationID uuid.UUID  `gorm:"column:notification_user_notification_id;type:uuid;not null;index" json:"notification_user_notification_id"`
	NotificationUserUserID         uuid.UUID  `gorm:"column:notification_user_user_id;type:uuid;not null;index" json:"notification_user_user_id"`
	NotificationUserReadAt         *time.Time `gorm:"column:notification_user_read_at" json:"notification_user_read_at,omitempty"`
	NotificationUserCreatedAt      time.Time  `gorm:"column:notification_user_created_at;autoCreateTime" json:"notification_user_created_at"`
}

func (NotificationUserModel) TableName() string {
	return "notification_users"
}
