package db

import (
	"errors"
	"time"

	"github.com/sablegrove/sitterly/internal/models"
	"gorm.io/gorm"
)

type InviteRepository struct {
	database *gorm.DB
}

func NewInviteRepository(database *gorm.DB) *InviteRepository {
	return &InviteRepository{database: database}
}

func (repo *InviteRepository) FindByCode(code string) (models.GroupInviteCode, bool, error) {
	var invite models.GroupInviteCode
	err := repo.database.Where("code = ?", code).First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.GroupInviteCode{}, false, nil
	}
	if err != nil {
		return models.GroupInviteCode{}, false, err
	}
	return invite, true, nil
}

func (repo *InviteRepository) Create(invite *models.GroupInviteCode) error {
	return repo.database.Create(invite).Error
}

func (repo *InviteRepository) ListByGroup(groupID uint) ([]models.GroupInviteCode, error) {
	invites := make([]models.GroupInviteCode, 0)
	if err := repo.database.
		Where("group_id = ?", groupID).
		Order("created_at DESC, id DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// ConsumeAndJoin increments the invite's use counter and inserts the
// membership in one transaction. The increment is guarded on
// uses < max_uses so two racing redemptions cannot both pass the cap: the
// loser sees zero affected rows and the whole transaction rolls back.
func (repo *InviteRepository) ConsumeAndJoin(inviteID uint, membership *models.GroupMember, now time.Time) (bool, error) {
	consumed := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.GroupInviteCode{}).
			Where("id = ? AND uses < max_uses AND expires_at > ?", inviteID, now).
			Update("uses", gorm.Expr("uses + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		consumed = true
		return tx.Create(membership).Error
	})
	return consumed, err
}

// PurgeUnredeemable deletes exhausted and expired codes.
func (repo *InviteRepository) PurgeUnredeemable(now time.Time) (int64, error) {
	result := repo.database.
		Where("uses >= max_uses OR expires_at <= ?", now).
		Delete(&models.GroupInviteCode{})
	return result.RowsAffected, result.Error
}
