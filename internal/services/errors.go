package services

import "errors"

// Claim/completion engine failures. ErrTaskNotFound deliberately covers both
// a missing task and a caller outside the task's group, so existence never
// leaks to non-members.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrAlreadyClaimed  = errors.New("task is already claimed by someone else")
	ErrAlreadyDone     = errors.New("task is already completed")
	ErrAlreadyVerified = errors.New("task completion is verified; ask the owner to unmark it first")
	ErrNotClaimant     = errors.New("you can't mark a task as done if you didn't claim it")
	ErrOwnTask         = errors.New("you can't claim your own task")
)

// Invite redemption failures.
var (
	ErrInviteNotFound  = errors.New("invite code not found")
	ErrInviteExpired   = errors.New("invite code has expired")
	ErrInviteExhausted = errors.New("invite code has no uses left")
	ErrAlreadyMember   = errors.New("already a member of this group")
)

// Visibility resolver failures.
var ErrInvalidRange = errors.New("time window end must be after its start")

// Group and task CRUD failures.
var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrPetNotFound     = errors.New("pet not found")
	ErrPetNotInGroup   = errors.New("pet is not assigned to that group")
	ErrNotGroupOwner   = errors.New("group owner access required")
	ErrNoPendingMember = errors.New("no pending join request for that user")
	ErrLastOwner       = errors.New("a group must keep at least one owner")
)

var ErrNotificationNotFound = errors.New("notification not found")
