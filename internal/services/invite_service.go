package services

import (
	"fmt"
	"time"

	"github.com/sablegrove/sitterly/internal/models"
)

type InviteRepository interface {
	FindByCode(code string) (models.GroupInviteCode, bool, error)
	ConsumeAndJoin(inviteID uint, membership *models.GroupMember, now time.Time) (bool, error)
}

type InviteMembershipRepository interface {
	FindMembership(groupID uint, userID uint) (models.GroupMember, bool, error)
	ListMembers(groupID uint) ([]models.GroupMember, error)
}

type InviteNotifier interface {
	JoinRequested(groupID uint, ownerID uint, requesterID uint) error
	MemberJoined(groupID uint, ownerID uint, joinerID uint) error
}

// InviteService turns an invite code into a membership row. The decisive
// uses-counter increment happens inside one transaction with the membership
// insert, so racing redemptions cannot overshoot max_uses.
type InviteService struct {
	invites  InviteRepository
	groups   InviteMembershipRepository
	notifier InviteNotifier
}

func NewInviteService(invites InviteRepository, groups InviteMembershipRepository, notifier InviteNotifier) *InviteService {
	return &InviteService{invites: invites, groups: groups, notifier: notifier}
}

// Redeem validates the code and joins the actor to its group. The role is
// pending when the code requires approval, full member otherwise.
func (service *InviteService) Redeem(code string, actorID uint, now time.Time) (models.GroupInviteCode, models.GroupMember, error) {
	invite, found, err := service.invites.FindByCode(code)
	if err != nil {
		return models.GroupInviteCode{}, models.GroupMember{}, err
	}
	if !found {
		return models.GroupInviteCode{}, models.GroupMember{}, ErrInviteNotFound
	}

	if !invite.Redeemable(now) {
		if !now.Before(invite.ExpiresAt) {
			return models.GroupInviteCode{}, models.GroupMember{}, ErrInviteExpired
		}
		return models.GroupInviteCode{}, models.GroupMember{}, ErrInviteExhausted
	}

	_, alreadyMember, err := service.groups.FindMembership(invite.GroupID, actorID)
	if err != nil {
		return models.GroupInviteCode{}, models.GroupMember{}, err
	}
	if alreadyMember {
		return models.GroupInviteCode{}, models.GroupMember{}, ErrAlreadyMember
	}

	role := models.RoleMember
	if invite.RequiresApproval {
		role = models.RolePending
	}
	membership := models.GroupMember{
		GroupID: invite.GroupID,
		UserID:  actorID,
		Role:    role,
	}

	consumed, err := service.invites.ConsumeAndJoin(invite.ID, &membership, now)
	if err != nil {
		return models.GroupInviteCode{}, models.GroupMember{}, err
	}
	if !consumed {
		// Lost the race on the last use, or the code expired in between.
		if !now.Before(invite.ExpiresAt) {
			return models.GroupInviteCode{}, models.GroupMember{}, ErrInviteExpired
		}
		return models.GroupInviteCode{}, models.GroupMember{}, ErrInviteExhausted
	}
	invite.Uses++

	if err := service.notifyOwners(invite.GroupID, actorID, invite.RequiresApproval); err != nil {
		return models.GroupInviteCode{}, models.GroupMember{}, fmt.Errorf("notify group owners: %w", err)
	}
	return invite, membership, nil
}

func (service *InviteService) notifyOwners(groupID uint, actorID uint, pendingApproval bool) error {
	if service.notifier == nil {
		return nil
	}
	members, err := service.groups.ListMembers(groupID)
	if err != nil {
		return err
	}
	for _, member := range members {
		if member.Role != models.RoleOwner || member.UserID == actorID {
			continue
		}
		if pendingApproval {
			err = service.notifier.JoinRequested(groupID, member.UserID, actorID)
		} else {
			err = service.notifier.MemberJoined(groupID, member.UserID, actorID)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
