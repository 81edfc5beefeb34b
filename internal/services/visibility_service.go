package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/sablegrove/sitterly/internal/db"
	"github.com/sablegrove/sitterly/internal/models"
)

type ViewType string

const (
	ViewAll        ViewType = "All"
	ViewOwned      ViewType = "Owned"
	ViewSittingFor ViewType = "SittingFor"
	ViewUnclaimed  ViewType = "Unclaimed"
)

func ParseViewType(raw string) (ViewType, error) {
	switch ViewType(raw) {
	case ViewAll, ViewOwned, ViewSittingFor, ViewUnclaimed:
		return ViewType(raw), nil
	case "":
		return ViewAll, nil
	}
	return "", fmt.Errorf("unknown view type %q", raw)
}

// TaskView is a task joined with the display names the list UI shows.
type TaskView struct {
	models.Task
	PetName   string `json:"pet_name"`
	GroupName string `json:"group_name"`
}

type VisibilityTaskRepository interface {
	ListOwnedInWindow(ownerID uint, from time.Time, to time.Time) ([]db.TaskWithNames, error)
	ListSittingForInWindow(userID uint, from time.Time, to time.Time) ([]db.TaskWithNames, error)
}

// VisibilityService answers which tasks a window and view type make visible
// to a user. It is read-only; pending group members see nothing.
type VisibilityService struct {
	tasks VisibilityTaskRepository
}

func NewVisibilityService(tasks VisibilityTaskRepository) *VisibilityService {
	return &VisibilityService{tasks: tasks}
}

func (service *VisibilityService) ResolveTasks(userID uint, from time.Time, to time.Time, viewType ViewType) ([]TaskView, error) {
	if !to.After(from) {
		return nil, ErrInvalidRange
	}

	var rows []db.TaskWithNames
	var err error
	switch viewType {
	case ViewOwned:
		rows, err = service.tasks.ListOwnedInWindow(userID, from, to)
	case ViewSittingFor:
		rows, err = service.tasks.ListSittingForInWindow(userID, from, to)
	case ViewAll, ViewUnclaimed:
		rows, err = service.union(userID, from, to)
	default:
		return nil, fmt.Errorf("unknown view type %q", viewType)
	}
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(rows))
	for _, row := range rows {
		if viewType == ViewUnclaimed && row.ClaimedBy != nil {
			continue
		}
		// The queries prefilter on the same columns; the schedule union
		// stays the authority on the window rule.
		schedule, err := ScheduleFromTask(row.Task)
		if err != nil || !schedule.Overlaps(from, to) {
			continue
		}
		views = append(views, TaskView{
			Task:      row.Task,
			PetName:   row.PetName,
			GroupName: row.GroupName,
		})
	}
	return views, nil
}

// union merges owned and sitting-for without duplicates and restores the
// deterministic start-time order across the two sources.
func (service *VisibilityService) union(userID uint, from time.Time, to time.Time) ([]db.TaskWithNames, error) {
	owned, err := service.tasks.ListOwnedInWindow(userID, from, to)
	if err != nil {
		return nil, err
	}
	sitting, err := service.tasks.ListSittingForInWindow(userID, from, to)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(owned)+len(sitting))
	merged := make([]db.TaskWithNames, 0, len(owned)+len(sitting))
	for _, row := range append(owned, sitting...) {
		if _, duplicate := seen[row.ID]; duplicate {
			continue
		}
		seen[row.ID] = struct{}{}
		merged = append(merged, row)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		left, right := taskStart(merged[i].Task), taskStart(merged[j].Task)
		if left.Equal(right) {
			return merged[i].ID < merged[j].ID
		}
		return left.Before(right)
	})
	return merged, nil
}

func taskStart(task models.Task) time.Time {
	schedule, err := ScheduleFromTask(task)
	if err != nil {
		return task.CreatedAt
	}
	return schedule.StartsAt()
}
