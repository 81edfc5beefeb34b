package services

import (
	"errors"
	"testing"

	"github.com/sablegrove/sitterly/internal/models"
)

func TestClaimStateOfCollapsesFieldPairs(t *testing.T) {
	t.Parallel()

	sitter := uint(7)

	state, err := ClaimStateOf(models.Task{})
	if err != nil || state != StateUnclaimed {
		t.Fatalf("empty task: got %v, %v", state, err)
	}

	state, err = ClaimStateOf(models.Task{ClaimedBy: &sitter})
	if err != nil || state != StateClaimed {
		t.Fatalf("claimed task: got %v, %v", state, err)
	}

	state, err = ClaimStateOf(models.Task{ClaimedBy: &sitter, MarkedAsDoneBy: &sitter})
	if err != nil || state != StateMarkedDone {
		t.Fatalf("marked-done task: got %v, %v", state, err)
	}
}

func TestClaimStateOfReportsDivergence(t *testing.T) {
	t.Parallel()

	sitter := uint(7)
	other := uint(9)

	if _, err := ClaimStateOf(models.Task{MarkedAsDoneBy: &sitter}); !errors.Is(err, ErrClaimStateDiverged) {
		t.Fatalf("done without claim must diverge, got %v", err)
	}
	if _, err := ClaimStateOf(models.Task{ClaimedBy: &other, MarkedAsDoneBy: &sitter}); !errors.Is(err, ErrClaimStateDiverged) {
		t.Fatalf("done by non-claimant must diverge, got %v", err)
	}
}
