package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/home/notifications/dto"
	"stepup_backend/internals/features/home/notifications/model"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 🟢 GET /api/u/notifications
func (ctrl *NotificationController) ListMine(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var rows []struct {
		model.NotificationModel
		model.NotificationUserModel
	}
	q := ctrl.DB.Table("notification_users").
		Select("notifications.*, notification_users.*").
		Joins("JOIN notifications ON notifications.notification_id = notification_users.notification_user_notification_id").
		Where("notification_users.notification_user_user_id = ?", rc.UserID).
		Order("notifications.notification_created_at DESC")

	var total int64
	if err := ctrl.DB.Table("notification_users").
		Where("notification_user_user_id = ?", rc.UserID).
		Count(&total).Error; err != nil {
		log.Printf("[ERROR] count notifications: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load notifications")
	}
	if err := q.Offset(paging.Offset).Limit(paging.Limit).Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] list notifications: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load notifications")
	}

	out := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToNotificationResponse(&rows[i].NotificationModel, rows[i].NotificationUserReadAt))
	}

	p := helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit)
	p.Count = len(out)
	return helper.SuccessWithPagination(c, "Notifications loaded", out, p)
}

// 🟢 PATCH /api/u/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	var row model.NotificationUserModel
	if err := ctrl.DB.
		Where("notification_user_notification_id = ? AND notification_user_user_id = ?", notifID, rc.UserID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Notification not found")
		}
		log.Printf("[ERROR] load notification_user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load notification")
	}

	if row.NotificationUserReadAt == nil {
		now := time.Now()
		if err := ctrl.DB.Model(&row).
			Update("notification_user_read_at", now).Error; err != nil {
			log.Printf("[ERROR] mark notification read: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to update notification")
		}
		row.NotificationUserReadAt = &now
	}

	return helper.Success(c, "Notification marked read", fiber.Map{
		"notification_id": notifID,
		"read_at":         row.NotificationUserReadAt,
	})
}
