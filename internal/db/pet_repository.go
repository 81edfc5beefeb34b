package db

import (
	"github.com/sablegrove/sitterly/internal/models"
	"gorm.io/gorm"
)

type PetRepository struct {
	database *gorm.DB
}

func NewPetRepository(database *gorm.DB) *PetRepository {
	return &PetRepository{database: database}
}

func (repo *PetRepository) FindByID(petID uint) (models.Pet, error) {
	var pet models.Pet
	if err := repo.database.First(&pet, petID).Error; err != nil {
		return models.Pet{}, err
	}
	return pet, nil
}

func (repo *PetRepository) FindOwnedByID(petID uint, ownerID uint) (models.Pet, error) {
	var pet models.Pet
	if err := repo.database.
		Where("id = ? AND owner_id = ?", petID, ownerID).
		First(&pet).Error; err != nil {
		return models.Pet{}, err
	}
	return pet, nil
}

func (repo *PetRepository) ListByOwner(ownerID uint) ([]models.Pet, error) {
	pets := make([]models.Pet, 0)
	if err := repo.database.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (repo *PetRepository) Create(pet *models.Pet) error {
	return repo.database.Create(pet).Error
}

func (repo *PetRepository) UpdateOwned(petID uint, ownerID uint, updates map[string]any) (int64, error) {
	result := repo.database.Model(&models.Pet{}).
		Where("id = ? AND owner_id = ?", petID, ownerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// DeleteOwned removes a pet together with its group associations and every
// task that references it, in one transaction.
func (repo *PetRepository) DeleteOwned(petID uint, ownerID uint) (int64, error) {
	var affected int64
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", petID, ownerID).Delete(&models.Pet{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		if err := tx.Where("pet_id = ?", petID).Delete(&models.GroupPet{}).Error; err != nil {
			return err
		}
		return tx.Where("pet_id = ?", petID).Delete(&models.Task{}).Error
	})
	return affected, err
}
