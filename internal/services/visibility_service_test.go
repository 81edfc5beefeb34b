package services

import (
	"errors"
	"testing"
	"time"

	"github.com/sablegrove/sitterly/internal/db"
	"github.com/sablegrove/sitterly/internal/models"
)

type visibilityRepositoryStub struct {
	owned   []db.TaskWithNames
	sitting []db.TaskWithNames
}

func (stub *visibilityRepositoryStub) ListOwnedInWindow(ownerID uint, from time.Time, to time.Time) ([]db.TaskWithNames, error) {
	return stub.owned, nil
}

func (stub *visibilityRepositoryStub) ListSittingForInWindow(userID uint, from time.Time, to time.Time) ([]db.TaskWithNames, error) {
	return stub.sitting, nil
}

func visibilityTask(id uint, owner uint, due time.Time, claimedBy *uint) db.TaskWithNames {
	dueCopy := due
	return db.TaskWithNames{
		Task: models.Task{
			ID:        id,
			OwnerID:   owner,
			DueMode:   true,
			DueDate:   &dueCopy,
			ClaimedBy: claimedBy,
		},
		PetName:   "Biscuit",
		GroupName: "Maple Street",
	}
}

func TestResolveTasksRejectsInvalidWindow(t *testing.T) {
	t.Parallel()

	service := NewVisibilityService(&visibilityRepositoryStub{})
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := service.ResolveTasks(1, from, from, ViewAll); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected InvalidRange for empty window, got %v", err)
	}
	if _, err := service.ResolveTasks(1, from, from.Add(-time.Hour), ViewOwned); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected InvalidRange for backwards window, got %v", err)
	}
}

func TestResolveTasksUnionDeduplicatesAndOrders(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	shared := visibilityTask(3, 1, base.Add(2*time.Hour), nil)
	stub := &visibilityRepositoryStub{
		owned: []db.TaskWithNames{
			visibilityTask(1, 1, base.Add(4*time.Hour), nil),
			shared,
		},
		sitting: []db.TaskWithNames{
			shared,
			visibilityTask(2, 9, base, nil),
		},
	}
	service := NewVisibilityService(stub)

	views, err := service.ResolveTasks(1, base.Add(-time.Hour), base.Add(24*time.Hour), ViewAll)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if len(views) != 3 {
		t.Fatalf("expected 3 distinct tasks, got %d", len(views))
	}
	wantOrder := []uint{2, 3, 1}
	for index, want := range wantOrder {
		if views[index].ID != want {
			t.Fatalf("position %d: expected task %d, got %d", index, want, views[index].ID)
		}
	}
}

func TestResolveTasksUnclaimedFiltersClaimedRows(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sitter := uint(7)
	stub := &visibilityRepositoryStub{
		owned: []db.TaskWithNames{
			visibilityTask(1, 1, base, &sitter),
			visibilityTask(2, 1, base.Add(time.Hour), nil),
		},
	}
	service := NewVisibilityService(stub)

	views, err := service.ResolveTasks(1, base.Add(-time.Hour), base.Add(24*time.Hour), ViewUnclaimed)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(views) != 1 || views[0].ID != 2 {
		t.Fatalf("expected only the unclaimed task, got %+v", views)
	}
}

func TestResolveTasksDropsRowsOutsideWindow(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	stub := &visibilityRepositoryStub{
		owned: []db.TaskWithNames{
			visibilityTask(1, 1, base, nil),
			visibilityTask(2, 1, base.Add(48*time.Hour), nil),
		},
	}
	service := NewVisibilityService(stub)

	views, err := service.ResolveTasks(1, base.Add(-time.Hour), base.Add(time.Hour), ViewOwned)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(views) != 1 || views[0].ID != 1 {
		t.Fatalf("rows outside the window must be dropped, got %+v", views)
	}
}

func TestResolveTasksCarriesDisplayNames(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	stub := &visibilityRepositoryStub{
		owned: []db.TaskWithNames{visibilityTask(1, 1, base, nil)},
	}
	service := NewVisibilityService(stub)

	views, err := service.ResolveTasks(1, base.Add(-time.Hour), base.Add(time.Hour), ViewOwned)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if views[0].PetName != "Biscuit" || views[0].GroupName != "Maple Street" {
		t.Fatalf("expected joined display names, got %+v", views[0])
	}
}

func TestParseViewTypeDefaultsToAll(t *testing.T) {
	t.Parallel()

	viewType, err := ParseViewType("")
	if err != nil || viewType != ViewAll {
		t.Fatalf("empty view type should default to All, got %v, %v", viewType, err)
	}
	if _, err := ParseViewType("Everything"); err == nil {
		t.Fatal("unknown view type must be rejected")
	}
}
