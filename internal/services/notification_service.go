package services

import (
	"context"
	"log"
	"time"

	"github.com/sablegrove/sitterly/internal/models"
)

const notificationRetention = 90 * 24 * time.Hour

type NotificationStore interface {
	Create(notification *models.Notification) error
	ListForUser(userID uint, limit int) ([]models.Notification, error)
	MarkRead(notificationID uint, userID uint) (int64, error)
	PurgeOlderThan(cutoff time.Time) (int64, error)
}

type InvitePurger interface {
	PurgeUnredeemable(now time.Time) (int64, error)
}

// NotificationService records in-app notifications and runs the retention
// sweep. Delivery (email, push) stays with external collaborators.
type NotificationService struct {
	store   NotificationStore
	invites InvitePurger
}

func NewNotificationService(store NotificationStore, invites InvitePurger) *NotificationService {
	return &NotificationService{store: store, invites: invites}
}

func (service *NotificationService) JoinRequested(groupID uint, ownerID uint, requesterID uint) error {
	return service.store.Create(&models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationJoinRequest,
		GroupID: &groupID,
		Message: "Someone asked to join your group",
	})
}

func (service *NotificationService) MemberJoined(groupID uint, ownerID uint, joinerID uint) error {
	return service.store.Create(&models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationMemberJoined,
		GroupID: &groupID,
		Message: "A new sitter joined your group",
	})
}

func (service *NotificationService) JoinApproved(groupID uint, userID uint) error {
	return service.store.Create(&models.Notification{
		UserID:  userID,
		Type:    models.NotificationJoinApproved,
		GroupID: &groupID,
		Message: "Your join request was approved",
	})
}

func (service *NotificationService) MemberRemoved(groupID uint, userID uint) error {
	return service.store.Create(&models.Notification{
		UserID:  userID,
		Type:    models.NotificationMemberRemoved,
		GroupID: &groupID,
		Message: "You were removed from a group",
	})
}

// TaskMutated tells the task owner about claim-state changes on their task.
func (service *NotificationService) TaskMutated(task models.Task) {
	taskID := task.ID
	groupID := task.GroupID
	var notification *models.Notification
	switch {
	case task.MarkedAsDoneBy != nil:
		notification = &models.Notification{
			UserID:  task.OwnerID,
			Type:    models.NotificationTaskDone,
			GroupID: &groupID,
			TaskID:  &taskID,
			Message: "A sitter marked your task as done",
		}
	case task.ClaimedBy != nil:
		notification = &models.Notification{
			UserID:  task.OwnerID,
			Type:    models.NotificationTaskClaimed,
			GroupID: &groupID,
			TaskID:  &taskID,
			Message: "A sitter claimed your task",
		}
	default:
		return
	}
	if err := service.store.Create(notification); err != nil {
		log.Printf("record task notification failed: %v", err)
	}
}

func (service *NotificationService) ListForUser(userID uint, limit int) ([]models.Notification, error) {
	return service.store.ListForUser(userID, limit)
}

func (service *NotificationService) MarkRead(notificationID uint, userID uint) error {
	affected, err := service.store.MarkRead(notificationID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// Sweep drops notifications past retention and invite codes that can no
// longer be redeemed.
func (service *NotificationService) Sweep(now time.Time) {
	if _, err := service.store.PurgeOlderThan(now.Add(-notificationRetention)); err != nil {
		log.Printf("purge notifications failed: %v", err)
	}
	if service.invites != nil {
		if _, err := service.invites.PurgeUnredeemable(now); err != nil {
			log.Printf("purge invite codes failed: %v", err)
		}
	}
}

// Start runs the retention sweep on an interval until the context ends.
func (service *NotificationService) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				service.Sweep(now)
			}
		}
	}()
}
