package services

import (
	"errors"

	"github.com/sablegrove/sitterly/internal/models"
)

var ErrClaimStateDiverged = errors.New("task marked done without a matching claim")

type ClaimState int

const (
	StateUnclaimed ClaimState = iota
	StateClaimed
	StateMarkedDone
)

func (state ClaimState) String() string {
	switch state {
	case StateUnclaimed:
		return "unclaimed"
	case StateClaimed:
		return "claimed"
	case StateMarkedDone:
		return "marked_done"
	}
	return "unknown"
}

// ClaimStateOf collapses the two nullable field pairs into the single
// authoritative state. A done mark without a claim, or held by someone other
// than the claimant, is a divergence the storage guards are meant to make
// unreachable.
func ClaimStateOf(task models.Task) (ClaimState, error) {
	if task.MarkedAsDoneBy != nil {
		if task.ClaimedBy == nil || *task.ClaimedBy != *task.MarkedAsDoneBy {
			return StateUnclaimed, ErrClaimStateDiverged
		}
		return StateMarkedDone, nil
	}
	if task.ClaimedBy != nil {
		return StateClaimed, nil
	}
	return StateUnclaimed, nil
}
