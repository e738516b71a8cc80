package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/home/notifications/model"
)

/* =========================================================
   POST-COMMIT EVENTS
   Core services return a list of Event values from their
   transaction; the controller dispatches them after commit.
   Delivery is best-effort: failures are logged and swallowed,
   never surfaced to the caller.
========================================================= */

const (
	EventTypeLessonSubmitted  = model.NotificationTypeLessonSubmitted
	EventTypePromotionReady   = model.NotificationTypePromotionReady
	EventTypePromotionOutcome = model.NotificationTypePromotionOutcome
)

type Event struct {
	RecipientUserID uuid.UUID
	CentreID        uuid.UUID
	Type            int
	Title           string
	Description     string
	Tags            []string
}

// Dispatch writes each event as a notification + recipient row. Runs
// outside any business transaction.
func Dispatch(db *gorm.DB, events []Event) {
	for _, ev := range events {
		if ev.RecipientUserID == uuid.Nil {
			continue
		}
		centre := ev.CentreID
		notif := model.NotificationModel{
			NotificationTitle:       ev.Title,
			NotificationDescription: ev.Description,
			NotificationType:        ev.Type,
			NotificationTags:        ev.Tags,
		}
		if centre != uuid.Nil {
			notif.NotificationCentreID = &centre
		}
		if err := db.Create(&notif).Error; err != nil {
			log.Printf("[ERROR] notification insert failed (swallowed): %v", err)
			continue
		}
		recipient := model.NotificationUserModel{
			NotificationUserNotificationID: notif.NotificationID,
			NotificationUserUserID:         ev.RecipientUserID,
		}
		if err := db.Create(&recipient).Error; err != nil {
			log.Printf("[ERROR] notification recipient insert failed (swallowed): %v", err)
		}
	}
}
