package services

import (
	"strings"
	"time"

	"github.com/sablegrove/sitterly/internal/models"
	"github.com/sablegrove/sitterly/internal/security"
)

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const inviteCodeLength = 10

type GroupMembershipRepository interface {
	FindByID(groupID uint) (models.Group, error)
	CreateWithOwner(group *models.Group, petIDs []uint) error
	UpdateDetails(groupID uint, updates map[string]any) (int64, error)
	FindMembership(groupID uint, userID uint) (models.GroupMember, bool, error)
	ListMembers(groupID uint) ([]models.GroupMember, error)
	ListGroupsForUser(userID uint) ([]models.Group, error)
	PromotePending(groupID uint, userID uint) (int64, error)
	RemoveMembership(groupID uint, userID uint) (int64, error)
	CountOwners(groupID uint) (int64, error)
	PetBelongsToGroup(groupID uint, petID uint) (bool, error)
	AssignPet(groupID uint, petID uint) error
	UnassignPet(groupID uint, petID uint) (int64, error)
}

type GroupPetRepository interface {
	FindOwnedByID(petID uint, ownerID uint) (models.Pet, error)
}

type GroupInviteCreator interface {
	Create(invite *models.GroupInviteCode) error
	ListByGroup(groupID uint) ([]models.GroupInviteCode, error)
}

type MembershipNotifier interface {
	JoinApproved(groupID uint, userID uint) error
	MemberRemoved(groupID uint, userID uint) error
}

type GroupService struct {
	groups   GroupMembershipRepository
	pets     GroupPetRepository
	invites  GroupInviteCreator
	notifier MembershipNotifier
}

func NewGroupService(groups GroupMembershipRepository, pets GroupPetRepository, invites GroupInviteCreator, notifier MembershipNotifier) *GroupService {
	return &GroupService{groups: groups, pets: pets, invites: invites, notifier: notifier}
}

// Create inserts the group with the creator as its first owner. Initial pets
// must belong to the creator; the whole write is one transaction.
func (service *GroupService) Create(creatorID uint, name string, description string, petIDs []uint) (models.Group, error) {
	for _, petID := range petIDs {
		if _, err := service.pets.FindOwnedByID(petID, creatorID); err != nil {
			return models.Group{}, ErrPetNotFound
		}
	}

	group := models.Group{
		CreatorID:   creatorID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if err := service.groups.CreateWithOwner(&group, petIDs); err != nil {
		return models.Group{}, err
	}
	return group, nil
}

// UpdateDetails renames or re-describes the group, owner only. An empty name
// keeps the current one.
func (service *GroupService) UpdateDetails(groupID uint, actorID uint, name string, description string) (models.Group, error) {
	if err := service.requireOwner(groupID, actorID); err != nil {
		return models.Group{}, err
	}

	updates := map[string]any{"description": strings.TrimSpace(description)}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		updates["name"] = trimmed
	}

	affected, err := service.groups.UpdateDetails(groupID, updates)
	if err != nil {
		return models.Group{}, err
	}
	if affected == 0 {
		return models.Group{}, ErrGroupNotFound
	}
	return service.groups.FindByID(groupID)
}

// ActiveRole returns the actor's role in the group, treating pending
// memberships as absence.
func (service *GroupService) ActiveRole(groupID uint, userID uint) (string, bool, error) {
	membership, found, err := service.groups.FindMembership(groupID, userID)
	if err != nil {
		return "", false, err
	}
	if !found || !models.IsActiveRole(membership.Role) {
		return "", false, nil
	}
	return membership.Role, true, nil
}

func (service *GroupService) requireOwner(groupID uint, actorID uint) error {
	role, active, err := service.ActiveRole(groupID, actorID)
	if err != nil {
		return err
	}
	if !active {
		return ErrGroupNotFound
	}
	if role != models.RoleOwner {
		return ErrNotGroupOwner
	}
	return nil
}

func (service *GroupService) GetForMember(groupID uint, actorID uint) (models.Group, []models.GroupMember, error) {
	membership, found, err := service.groups.FindMembership(groupID, actorID)
	if err != nil {
		return models.Group{}, nil, err
	}
	if !found || !models.IsActiveRole(membership.Role) {
		return models.Group{}, nil, ErrGroupNotFound
	}
	group, err := service.groups.FindByID(groupID)
	if err != nil {
		return models.Group{}, nil, ErrGroupNotFound
	}
	members, err := service.groups.ListMembers(groupID)
	if err != nil {
		return models.Group{}, nil, err
	}
	return group, members, nil
}

func (service *GroupService) ListForUser(userID uint) ([]models.Group, error) {
	return service.groups.ListGroupsForUser(userID)
}

// ApprovePending promotes a pending join request to full membership.
func (service *GroupService) ApprovePending(groupID uint, actorID uint, userID uint) error {
	if err := service.requireOwner(groupID, actorID); err != nil {
		return err
	}
	affected, err := service.groups.PromotePending(groupID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoPendingMember
	}
	if service.notifier != nil {
		return service.notifier.JoinApproved(groupID, userID)
	}
	return nil
}

// RemoveMember removes a member or declines a pending request. Members may
// remove themselves; otherwise owner rights are required. The last owner
// cannot leave.
func (service *GroupService) RemoveMember(groupID uint, actorID uint, userID uint) error {
	if actorID != userID {
		if err := service.requireOwner(groupID, actorID); err != nil {
			return err
		}
	}

	membership, found, err := service.groups.FindMembership(groupID, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrGroupNotFound
	}
	if membership.Role == models.RoleOwner {
		owners, err := service.groups.CountOwners(groupID)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	affected, err := service.groups.RemoveMembership(groupID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrGroupNotFound
	}
	if service.notifier != nil && actorID != userID {
		return service.notifier.MemberRemoved(groupID, userID)
	}
	return nil
}

// CreateInvite mints a fresh invite code for the group, owner only.
func (service *GroupService) CreateInvite(groupID uint, actorID uint, maxUses int, ttl time.Duration, requiresApproval bool, now time.Time) (models.GroupInviteCode, error) {
	if err := service.requireOwner(groupID, actorID); err != nil {
		return models.GroupInviteCode{}, err
	}
	if maxUses < 1 {
		maxUses = 1
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	code, err := security.RandomString(inviteCodeLength, inviteCodeAlphabet)
	if err != nil {
		return models.GroupInviteCode{}, err
	}

	invite := models.GroupInviteCode{
		GroupID:          groupID,
		CreatorID:        actorID,
		Code:             code,
		MaxUses:          maxUses,
		ExpiresAt:        now.Add(ttl),
		RequiresApproval: requiresApproval,
	}
	if err := service.invites.Create(&invite); err != nil {
		return models.GroupInviteCode{}, err
	}
	return invite, nil
}

// ListInvites returns the group's invite codes, owner only.
func (service *GroupService) ListInvites(groupID uint, actorID uint) ([]models.GroupInviteCode, error) {
	if err := service.requireOwner(groupID, actorID); err != nil {
		return nil, err
	}
	return service.invites.ListByGroup(groupID)
}

// AssignPet attaches a pet to a group. The actor must own the pet and the
// group; a task can then reference the pair.
func (service *GroupService) AssignPet(groupID uint, actorID uint, petID uint) error {
	if err := service.requireOwner(groupID, actorID); err != nil {
		return err
	}
	if _, err := service.pets.FindOwnedByID(petID, actorID); err != nil {
		return ErrPetNotFound
	}
	assigned, err := service.groups.PetBelongsToGroup(groupID, petID)
	if err != nil {
		return err
	}
	if assigned {
		return nil
	}
	return service.groups.AssignPet(groupID, petID)
}

// UnassignPet detaches a pet from a group, owner only.
func (service *GroupService) UnassignPet(groupID uint, actorID uint, petID uint) error {
	if err := service.requireOwner(groupID, actorID); err != nil {
		return err
	}
	affected, err := service.groups.UnassignPet(groupID, petID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPetNotInGroup
	}
	return nil
}
