package db

import (
	"errors"
	"time"

	"github.com/sablegrove/sitterly/internal/models"
	"gorm.io/gorm"
)

type TaskRepository struct {
	database *gorm.DB
}

func NewTaskRepository(database *gorm.DB) *TaskRepository {
	return &TaskRepository{database: database}
}

// TaskWithNames carries a task plus the display names the UI lists alongside.
type TaskWithNames struct {
	models.Task `gorm:"embedded"`
	PetName     string `gorm:"column:pet_name"`
	GroupName   string `gorm:"column:group_name"`
}

// startTimeExpr orders tasks by their effective start regardless of timing
// shape.
const startTimeExpr = "(CASE WHEN tasks.due_mode = 1 THEN tasks.due_date ELSE tasks.date_range_from END)"

// overlapExpr is the window test: due-at tasks match on the due instant,
// spanning tasks match on the range start.
const overlapExpr = "((tasks.due_mode = 1 AND tasks.due_date >= ? AND tasks.due_date <= ?) OR " +
	"(tasks.due_mode = 0 AND tasks.date_range_from >= ? AND tasks.date_range_from <= ?))"

func (repo *TaskRepository) Create(task *models.Task) error {
	return repo.database.Create(task).Error
}

func (repo *TaskRepository) FindByID(taskID uint) (models.Task, error) {
	var task models.Task
	if err := repo.database.First(&task, taskID).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// FindForMember loads a task only if the acting user is a non-pending member
// of its group. Absent and unauthorized are indistinguishable on purpose.
func (repo *TaskRepository) FindForMember(taskID uint, userID uint) (models.Task, bool, error) {
	var task models.Task
	err := repo.database.
		Joins("JOIN group_members ON group_members.group_id = tasks.group_id").
		Where("tasks.id = ? AND group_members.user_id = ? AND group_members.role IN ?",
			taskID, userID, []string{models.RoleOwner, models.RoleMember}).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, false, nil
	}
	if err != nil {
		return models.Task{}, false, err
	}
	return task, true, nil
}

func (repo *TaskRepository) ListOwnedNewestFirst(ownerID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := repo.database.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *TaskRepository) ListOwnedInWindow(ownerID uint, from time.Time, to time.Time) ([]TaskWithNames, error) {
	rows := make([]TaskWithNames, 0)
	err := repo.database.Table("tasks").
		Select("tasks.*, pets.name AS pet_name, groups.name AS group_name").
		Joins("JOIN pets ON pets.id = tasks.pet_id").
		Joins("JOIN groups ON groups.id = tasks.group_id").
		Where("tasks.owner_id = ?", ownerID).
		Where(overlapExpr, from, to, from, to).
		Order(startTimeExpr + " ASC, tasks.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListSittingForInWindow returns tasks visible through a shared group but not
// owned by the user. Pending memberships grant nothing.
func (repo *TaskRepository) ListSittingForInWindow(userID uint, from time.Time, to time.Time) ([]TaskWithNames, error) {
	rows := make([]TaskWithNames, 0)
	err := repo.database.Table("tasks").
		Select("tasks.*, pets.name AS pet_name, groups.name AS group_name").
		Joins("JOIN pets ON pets.id = tasks.pet_id").
		Joins("JOIN groups ON groups.id = tasks.group_id").
		Joins("JOIN group_members ON group_members.group_id = tasks.group_id").
		Where("tasks.owner_id <> ? AND group_members.user_id = ? AND group_members.role IN ?",
			userID, userID, []string{models.RoleOwner, models.RoleMember}).
		Where(overlapExpr, from, to, from, to).
		Order(startTimeExpr + " ASC, tasks.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ClaimIfUnclaimed is a guarded compare-and-swap: the authorization predicate
// lives in the WHERE clause so two racing claims cannot both succeed, and an
// owner can never claim their own task. Zero affected rows means the guard
// failed; the caller re-reads to map the reason.
func (repo *TaskRepository) ClaimIfUnclaimed(taskID uint, userID uint, now time.Time) (int64, error) {
	result := repo.database.Model(&models.Task{}).
		Where("id = ? AND claimed_by IS NULL AND owner_id <> ?", taskID, userID).
		Updates(map[string]any{
			"claimed_by": userID,
			"claimed_at": now,
		})
	return result.RowsAffected, result.Error
}

// ReleaseClaim clears the claim and, with it, any mark-as-done the claimant
// had set, so the two pairs cannot diverge.
func (repo *TaskRepository) ReleaseClaim(taskID uint, userID uint) (int64, error) {
	result := repo.database.Model(&models.Task{}).
		Where("id = ? AND claimed_by = ?", taskID, userID).
		Updates(map[string]any{
			"claimed_by":        nil,
			"claimed_at":        nil,
			"marked_as_done_by": nil,
			"marked_as_done_at": nil,
		})
	return result.RowsAffected, result.Error
}

// MarkDone sets the done pair, guarded on the actor still holding the claim.
func (repo *TaskRepository) MarkDone(taskID uint, userID uint, now time.Time) (int64, error) {
	result := repo.database.Model(&models.Task{}).
		Where("id = ? AND claimed_by = ? AND marked_as_done_by IS NULL AND completed = ?", taskID, userID, false).
		Updates(map[string]any{
			"marked_as_done_by": userID,
			"marked_as_done_at": now,
		})
	return result.RowsAffected, result.Error
}

func (repo *TaskRepository) UnmarkDone(taskID uint, userID uint) (int64, error) {
	result := repo.database.Model(&models.Task{}).
		Where("id = ? AND marked_as_done_by = ? AND completed = ?", taskID, userID, false).
		Updates(map[string]any{
			"marked_as_done_by": nil,
			"marked_as_done_at": nil,
		})
	return result.RowsAffected, result.Error
}

func (repo *TaskRepository) UpdateOwned(taskID uint, ownerID uint, updates map[string]any) (int64, error) {
	result := repo.database.Model(&models.Task{}).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (repo *TaskRepository) DeleteOwned(taskID uint, ownerID uint) (int64, error) {
	result := repo.database.
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
