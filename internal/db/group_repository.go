package db

import (
	"errors"

	"github.com/sablegrove/sitterly/internal/models"
	"gorm.io/gorm"
)

type GroupRepository struct {
	database *gorm.DB
}

func NewGroupRepository(database *gorm.DB) *GroupRepository {
	return &GroupRepository{database: database}
}

func (repo *GroupRepository) FindByID(groupID uint) (models.Group, error) {
	var group models.Group
	if err := repo.database.First(&group, groupID).Error; err != nil {
		return models.Group{}, err
	}
	return group, nil
}

// CreateWithOwner inserts the group, the creator's owner membership and any
// initial pet associations as one transaction.
func (repo *GroupRepository) CreateWithOwner(group *models.Group, petIDs []uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		membership := models.GroupMember{
			GroupID: group.ID,
			UserID:  group.CreatorID,
			Role:    models.RoleOwner,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		for _, petID := range petIDs {
			association := models.GroupPet{GroupID: group.ID, PetID: petID}
			if err := tx.Create(&association).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *GroupRepository) UpdateDetails(groupID uint, updates map[string]any) (int64, error) {
	result := repo.database.Model(&models.Group{}).
		Where("id = ?", groupID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (repo *GroupRepository) FindMembership(groupID uint, userID uint) (models.GroupMember, bool, error) {
	var membership models.GroupMember
	err := repo.database.
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.GroupMember{}, false, nil
	}
	if err != nil {
		return models.GroupMember{}, false, err
	}
	return membership, true, nil
}

func (repo *GroupRepository) ListMembers(groupID uint) ([]models.GroupMember, error) {
	members := make([]models.GroupMember, 0)
	if err := repo.database.
		Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (repo *GroupRepository) ListGroupsForUser(userID uint) ([]models.Group, error) {
	groups := make([]models.Group, 0)
	if err := repo.database.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC, groups.id DESC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// PromotePending flips a pending membership to full member. Zero affected
// rows means there was no pending request to approve.
func (repo *GroupRepository) PromotePending(groupID uint, userID uint) (int64, error) {
	result := repo.database.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND role = ?", groupID, userID, models.RolePending).
		Update("role", models.RoleMember)
	return result.RowsAffected, result.Error
}

func (repo *GroupRepository) RemoveMembership(groupID uint, userID uint) (int64, error) {
	result := repo.database.
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{})
	return result.RowsAffected, result.Error
}

func (repo *GroupRepository) CountOwners(groupID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.GroupMember{}).
		Where("group_id = ? AND role = ?", groupID, models.RoleOwner).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *GroupRepository) PetBelongsToGroup(groupID uint, petID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.GroupPet{}).
		Where("group_id = ? AND pet_id = ?", groupID, petID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *GroupRepository) AssignPet(groupID uint, petID uint) error {
	association := models.GroupPet{GroupID: groupID, PetID: petID}
	return repo.database.Create(&association).Error
}

func (repo *GroupRepository) UnassignPet(groupID uint, petID uint) (int64, error) {
	result := repo.database.
		Where("group_id = ? AND pet_id = ?", groupID, petID).
		Delete(&models.GroupPet{})
	return result.RowsAffected, result.Error
}
