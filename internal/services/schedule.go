package services

import (
	"errors"
	"time"

	"github.com/sablegrove/sitterly/internal/models"
)

var (
	ErrScheduleMissingDueDate = errors.New("due-at schedule requires a due date")
	ErrScheduleMissingRange   = errors.New("spanning schedule requires both range bounds")
	ErrScheduleInvertedRange  = errors.New("range end must be after range start")
)

type scheduleKind int

const (
	scheduleDueAt scheduleKind = iota
	scheduleSpanning
)

// Schedule is the tagged union behind a task's flat due_mode columns: a task
// is either due at one instant or spans an interval, never both.
type Schedule struct {
	kind scheduleKind
	at   time.Time
	from time.Time
	to   time.Time
}

func DueAt(at time.Time) Schedule {
	return Schedule{kind: scheduleDueAt, at: at}
}

func Spanning(from time.Time, to time.Time) (Schedule, error) {
	if !to.After(from) {
		return Schedule{}, ErrScheduleInvertedRange
	}
	return Schedule{kind: scheduleSpanning, from: from, to: to}, nil
}

// ScheduleFromTask reconstructs the union from the stored shape.
func ScheduleFromTask(task models.Task) (Schedule, error) {
	if task.DueMode {
		if task.DueDate == nil {
			return Schedule{}, ErrScheduleMissingDueDate
		}
		return DueAt(*task.DueDate), nil
	}
	if task.DateRangeFrom == nil || task.DateRangeTo == nil {
		return Schedule{}, ErrScheduleMissingRange
	}
	return Spanning(*task.DateRangeFrom, *task.DateRangeTo)
}

func (schedule Schedule) IsDueAt() bool {
	return schedule.kind == scheduleDueAt
}

// StartsAt is the task's effective start, used for deterministic ordering.
func (schedule Schedule) StartsAt() time.Time {
	if schedule.IsDueAt() {
		return schedule.at
	}
	return schedule.from
}

// Overlaps applies the visibility window test: a due-at task matches when its
// due instant falls inside the window, a spanning task when its start does.
func (schedule Schedule) Overlaps(from time.Time, to time.Time) bool {
	start := schedule.StartsAt()
	return !start.Before(from) && !start.After(to)
}

// ApplyTo writes the union back into the flat wire shape, clearing the
// inactive columns.
func (schedule Schedule) ApplyTo(task *models.Task) {
	if schedule.IsDueAt() {
		at := schedule.at
		task.DueMode = true
		task.DueDate = &at
		task.DateRangeFrom = nil
		task.DateRangeTo = nil
		return
	}
	from := schedule.from
	to := schedule.to
	task.DueMode = false
	task.DueDate = nil
	task.DateRangeFrom = &from
	task.DateRangeTo = &to
}
