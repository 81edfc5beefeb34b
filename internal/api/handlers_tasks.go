package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sablegrove/sitterly/internal/services"
)

var errMissingTimeBound = errors.New("missing time bound")

// GetTasks resolves the caller's visible tasks for a window and view type,
// or one task by id when ?id= is present.
func (handler *Handler) GetTasks(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}

	if rawID := c.Query("id"); rawID != "" {
		taskID, err := parseID(rawID)
		if err != nil {
			return validationError(c, "invalid task id")
		}
		task, found, err := handler.deps.repositories.Tasks.FindForMember(taskID, user.ID)
		if err != nil {
			return serviceError(c, err)
		}
		if !found {
			return serviceError(c, services.ErrTaskNotFound)
		}
		return apiSuccess(c, task)
	}

	viewType, err := services.ParseViewType(c.Query("type"))
	if err != nil {
		return validationError(c, "unknown view type")
	}

	// Without a window there is nothing to resolve; fall back to the
	// caller's own backlog, newest first.
	if c.Query("from") == "" && c.Query("to") == "" {
		if viewType != services.ViewAll && viewType != services.ViewOwned {
			return validationError(c, "view type requires a time window")
		}
		tasks, err := handler.deps.tasks.ListOwned(user.ID)
		if err != nil {
			return serviceError(c, err)
		}
		return apiSuccess(c, tasks)
	}

	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return validationError(c, "invalid from timestamp")
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return validationError(c, "invalid to timestamp")
	}

	tasks, err := handler.deps.visibility.ResolveTasks(user.ID, from, to, viewType)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, tasks)
}

func (handler *Handler) CreateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}

	input := taskInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}
	if input.Name == "" {
		return validationError(c, "task name is required")
	}
	if input.PetID == 0 || input.GroupID == 0 {
		return validationError(c, "pet_id and group_id are required")
	}

	schedule, err := services.NewScheduleFromFields(input.DueMode, input.DueDate, input.DateRangeFrom, input.DateRangeTo)
	if err != nil {
		return serviceError(c, err)
	}

	task, err := handler.deps.tasks.Create(user.ID, services.TaskInput{
		Name:                 input.Name,
		Instructions:         input.Instructions,
		PetID:                input.PetID,
		GroupID:              input.GroupID,
		Schedule:             schedule,
		RequiresVerification: input.RequiresVerification,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, task)
}

func (handler *Handler) UpdateTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	taskID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid task id")
	}

	input := taskInput{}
	if err := c.BodyParser(&input); err != nil {
		return validationError(c, "invalid payload")
	}

	schedule, err := services.NewScheduleFromFields(input.DueMode, input.DueDate, input.DateRangeFrom, input.DateRangeTo)
	if err != nil {
		return serviceError(c, err)
	}

	task, err := handler.deps.tasks.UpdateDetails(taskID, user.ID, services.TaskInput{
		Name:                 input.Name,
		Instructions:         input.Instructions,
		PetID:                input.PetID,
		GroupID:              input.GroupID,
		Schedule:             schedule,
		RequiresVerification: input.RequiresVerification,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, task)
}

func (handler *Handler) DeleteTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	taskID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid task id")
	}

	if err := handler.deps.tasks.Delete(taskID, user.ID); err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, fiber.Map{"deleted": true})
}

// SetTaskCompleted is the owner's verification switch.
func (handler *Handler) SetTaskCompleted(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	taskID, err := parseID(c.Params("id"))
	if err != nil {
		return validationError(c, "invalid task id")
	}

	input := completeInput{Completed: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return validationError(c, "invalid payload")
		}
	}

	task, err := handler.deps.tasks.SetCompleted(taskID, user.ID, input.Completed)
	if err != nil {
		return serviceError(c, err)
	}
	return apiSuccess(c, task)
}

func parseID(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parseTimeQuery(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errMissingTimeBound
	}
	return time.Parse(time.RFC3339, raw)
}
