package db

import (
	"time"

	"github.com/sablegrove/sitterly/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	database *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{database: database}
}

func (repo *NotificationRepository) Create(notification *models.Notification) error {
	return repo.database.Create(notification).Error
}

func (repo *NotificationRepository) ListForUser(userID uint, limit int) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	query := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (repo *NotificationRepository) MarkRead(notificationID uint, userID uint) (int64, error) {
	result := repo.database.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (repo *NotificationRepository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result := repo.database.
		Where("created_at < ?", cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
