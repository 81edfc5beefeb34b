package services

import (
	"time"

	"github.com/sablegrove/sitterly/internal/models"
)

type ClaimTaskRepository interface {
	FindForMember(taskID uint, userID uint) (models.Task, bool, error)
	FindByID(taskID uint) (models.Task, error)
	ClaimIfUnclaimed(taskID uint, userID uint, now time.Time) (int64, error)
	ReleaseClaim(taskID uint, userID uint) (int64, error)
	MarkDone(taskID uint, userID uint, now time.Time) (int64, error)
	UnmarkDone(taskID uint, userID uint) (int64, error)
}

// TaskMutationListener hears about successful claim-state changes so the
// presentation layer can drop cached task lists for the affected users.
type TaskMutationListener interface {
	TaskMutated(task models.Task)
}

// ClaimService is the state machine over claimed_by/marked_as_done_by. Every
// write goes through a guarded update whose WHERE clause re-checks the
// precondition, so the loaded snapshot only chooses which transition to
// attempt; the store decides whether it still applies.
type ClaimService struct {
	tasks    ClaimTaskRepository
	listener TaskMutationListener
}

func NewClaimService(tasks ClaimTaskRepository, listener TaskMutationListener) *ClaimService {
	return &ClaimService{tasks: tasks, listener: listener}
}

// ToggleClaim claims an unclaimed task for the actor, or releases the actor's
// own claim. Releasing also clears any mark-as-done so the two field pairs
// stay in lockstep.
func (service *ClaimService) ToggleClaim(taskID uint, actorID uint, now time.Time) (models.Task, error) {
	task, found, err := service.tasks.FindForMember(taskID, actorID)
	if err != nil {
		return models.Task{}, err
	}
	if !found {
		return models.Task{}, ErrTaskNotFound
	}

	state, err := ClaimStateOf(task)
	if err != nil {
		return models.Task{}, err
	}

	if task.Completed && task.RequiresVerification {
		return models.Task{}, ErrAlreadyVerified
	}

	if state != StateUnclaimed && *task.ClaimedBy == actorID {
		affected, err := service.tasks.ReleaseClaim(taskID, actorID)
		if err != nil {
			return models.Task{}, err
		}
		if affected == 0 {
			// The claim moved between read and write.
			return models.Task{}, service.mapClaimFailure(taskID, actorID)
		}
		return service.reload(taskID)
	}

	if state != StateUnclaimed {
		return models.Task{}, ErrAlreadyClaimed
	}

	if task.OwnerID == actorID {
		return models.Task{}, ErrOwnTask
	}

	affected, err := service.tasks.ClaimIfUnclaimed(taskID, actorID, now)
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, service.mapClaimFailure(taskID, actorID)
	}
	return service.reload(taskID)
}

// ToggleMarkedAsDone marks the actor's claimed task done, or takes the
// actor's own mark back. Completion requires holding the claim.
func (service *ClaimService) ToggleMarkedAsDone(taskID uint, actorID uint, now time.Time) (models.Task, error) {
	task, found, err := service.tasks.FindForMember(taskID, actorID)
	if err != nil {
		return models.Task{}, err
	}
	if !found {
		return models.Task{}, ErrTaskNotFound
	}

	state, err := ClaimStateOf(task)
	if err != nil {
		return models.Task{}, err
	}

	if task.Completed {
		return models.Task{}, ErrAlreadyDone
	}

	if state == StateMarkedDone && *task.MarkedAsDoneBy == actorID {
		affected, err := service.tasks.UnmarkDone(taskID, actorID)
		if err != nil {
			return models.Task{}, err
		}
		if affected == 0 {
			return models.Task{}, ErrAlreadyDone
		}
		return service.reload(taskID)
	}

	if state != StateClaimed || *task.ClaimedBy != actorID {
		return models.Task{}, ErrNotClaimant
	}

	affected, err := service.tasks.MarkDone(taskID, actorID, now)
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, service.mapDoneFailure(taskID, actorID)
	}
	return service.reload(taskID)
}

// mapClaimFailure re-reads a task whose guarded claim update matched no rows
// and names the reason the guard rejected it.
func (service *ClaimService) mapClaimFailure(taskID uint, actorID uint) error {
	task, err := service.tasks.FindByID(taskID)
	if err != nil {
		return ErrTaskNotFound
	}
	if task.OwnerID == actorID {
		return ErrOwnTask
	}
	if task.ClaimedBy != nil && *task.ClaimedBy != actorID {
		return ErrAlreadyClaimed
	}
	return ErrAlreadyClaimed
}

func (service *ClaimService) mapDoneFailure(taskID uint, actorID uint) error {
	task, err := service.tasks.FindByID(taskID)
	if err != nil {
		return ErrTaskNotFound
	}
	if task.Completed {
		return ErrAlreadyDone
	}
	if task.ClaimedBy == nil || *task.ClaimedBy != actorID {
		return ErrNotClaimant
	}
	return ErrAlreadyDone
}

func (service *ClaimService) reload(taskID uint) (models.Task, error) {
	task, err := service.tasks.FindByID(taskID)
	if err != nil {
		return models.Task{}, err
	}
	if service.listener != nil {
		service.listener.TaskMutated(task)
	}
	return task, nil
}
