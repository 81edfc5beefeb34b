package services

import (
	"strings"
	"time"

	"github.com/sablegrove/sitterly/internal/models"
)

type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(taskID uint) (models.Task, error)
	ListOwnedNewestFirst(ownerID uint) ([]models.Task, error)
	UpdateOwned(taskID uint, ownerID uint, updates map[string]any) (int64, error)
	DeleteOwned(taskID uint, ownerID uint) (int64, error)
}

type TaskGroupRepository interface {
	FindMembership(groupID uint, userID uint) (models.GroupMember, bool, error)
	PetBelongsToGroup(groupID uint, petID uint) (bool, error)
}

type TaskInput struct {
	Name                 string
	Instructions         string
	PetID                uint
	GroupID              uint
	Schedule             Schedule
	RequiresVerification bool
}

// TaskService owns the owner-side task lifecycle: create, edit details,
// delete. Claim and completion go through ClaimService instead.
type TaskService struct {
	tasks    TaskRepository
	groups   TaskGroupRepository
	listener TaskMutationListener
}

func NewTaskService(tasks TaskRepository, groups TaskGroupRepository, listener TaskMutationListener) *TaskService {
	return &TaskService{tasks: tasks, groups: groups, listener: listener}
}

// Create validates that the actor actively belongs to the target group and
// that the pet is assigned to it before inserting. The pet-in-group check
// keeps a task from ever pointing at a subject its sitters cannot see.
func (service *TaskService) Create(actorID uint, input TaskInput) (models.Task, error) {
	membership, found, err := service.groups.FindMembership(input.GroupID, actorID)
	if err != nil {
		return models.Task{}, err
	}
	if !found || !models.IsActiveRole(membership.Role) {
		return models.Task{}, ErrGroupNotFound
	}

	inGroup, err := service.groups.PetBelongsToGroup(input.GroupID, input.PetID)
	if err != nil {
		return models.Task{}, err
	}
	if !inGroup {
		return models.Task{}, ErrPetNotInGroup
	}

	task := models.Task{
		CreatorID:            actorID,
		OwnerID:              actorID,
		PetID:                input.PetID,
		GroupID:              input.GroupID,
		Name:                 strings.TrimSpace(input.Name),
		Instructions:         strings.TrimSpace(input.Instructions),
		RequiresVerification: input.RequiresVerification,
	}
	input.Schedule.ApplyTo(&task)

	if err := service.tasks.Create(&task); err != nil {
		return models.Task{}, err
	}
	if service.listener != nil {
		service.listener.TaskMutated(task)
	}
	return task, nil
}

// UpdateDetails edits owner-editable fields. The claim machine's fields are
// out of reach here by construction.
func (service *TaskService) UpdateDetails(taskID uint, actorID uint, input TaskInput) (models.Task, error) {
	current, err := service.tasks.FindByID(taskID)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}
	if current.OwnerID != actorID {
		return models.Task{}, ErrTaskNotFound
	}

	groupID := input.GroupID
	if groupID == 0 {
		groupID = current.GroupID
	}
	petID := input.PetID
	if petID == 0 {
		petID = current.PetID
	}
	inGroup, err := service.groups.PetBelongsToGroup(groupID, petID)
	if err != nil {
		return models.Task{}, err
	}
	if !inGroup {
		return models.Task{}, ErrPetNotInGroup
	}

	var scheduled models.Task
	input.Schedule.ApplyTo(&scheduled)

	updates := map[string]any{
		"pet_id":                petID,
		"group_id":              groupID,
		"due_mode":              scheduled.DueMode,
		"due_date":              scheduled.DueDate,
		"date_range_from":       scheduled.DateRangeFrom,
		"date_range_to":         scheduled.DateRangeTo,
		"requires_verification": input.RequiresVerification,
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		updates["name"] = name
	}
	if instructions := strings.TrimSpace(input.Instructions); instructions != current.Instructions {
		updates["instructions"] = instructions
	}

	affected, err := service.tasks.UpdateOwned(taskID, actorID, updates)
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	task, err := service.tasks.FindByID(taskID)
	if err != nil {
		return models.Task{}, err
	}
	if service.listener != nil {
		service.listener.TaskMutated(task)
	}
	return task, nil
}

// SetCompleted is the owner-side verification switch: it finalizes or reopens
// a task regardless of the sitter's claim.
func (service *TaskService) SetCompleted(taskID uint, actorID uint, completed bool) (models.Task, error) {
	current, err := service.tasks.FindByID(taskID)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}
	if current.OwnerID != actorID {
		return models.Task{}, ErrTaskNotFound
	}

	affected, err := service.tasks.UpdateOwned(taskID, actorID, map[string]any{"completed": completed})
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	task, err := service.tasks.FindByID(taskID)
	if err != nil {
		return models.Task{}, err
	}
	if service.listener != nil {
		service.listener.TaskMutated(task)
	}
	return task, nil
}

func (service *TaskService) Delete(taskID uint, actorID uint) error {
	affected, err := service.tasks.DeleteOwned(taskID, actorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (service *TaskService) ListOwned(ownerID uint) ([]models.Task, error) {
	return service.tasks.ListOwnedNewestFirst(ownerID)
}

// NewScheduleFromFields builds the schedule union from the flat wire fields.
func NewScheduleFromFields(dueMode bool, dueDate *time.Time, rangeFrom *time.Time, rangeTo *time.Time) (Schedule, error) {
	if dueMode {
		if dueDate == nil {
			return Schedule{}, ErrScheduleMissingDueDate
		}
		return DueAt(*dueDate), nil
	}
	if rangeFrom == nil || rangeTo == nil {
		return Schedule{}, ErrScheduleMissingRange
	}
	return Spanning(*rangeFrom, *rangeTo)
}
