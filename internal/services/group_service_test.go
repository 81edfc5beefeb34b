package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sablegrove/sitterly/internal/models"
)

type groupRepositoryStub struct {
	groups      map[uint]models.Group
	memberships map[uint]map[uint]models.GroupMember
	groupPets   map[uint]map[uint]bool
}

func newGroupRepositoryStub() *groupRepositoryStub {
	return &groupRepositoryStub{
		groups:      make(map[uint]models.Group),
		memberships: make(map[uint]map[uint]models.GroupMember),
		groupPets:   make(map[uint]map[uint]bool),
	}
}

func (stub *groupRepositoryStub) addMember(groupID uint, userID uint, role string) {
	if stub.memberships[groupID] == nil {
		stub.memberships[groupID] = make(map[uint]models.GroupMember)
	}
	stub.memberships[groupID][userID] = models.GroupMember{GroupID: groupID, UserID: userID, Role: role}
}

func (stub *groupRepositoryStub) FindByID(groupID uint) (models.Group, error) {
	group, found := stub.groups[groupID]
	if !found {
		return models.Group{}, ErrGroupNotFound
	}
	return group, nil
}

func (stub *groupRepositoryStub) CreateWithOwner(group *models.Group, petIDs []uint) error {
	group.ID = uint(len(stub.groups) + 1)
	stub.groups[group.ID] = *group
	stub.addMember(group.ID, group.CreatorID, models.RoleOwner)
	for _, petID := range petIDs {
		if stub.groupPets[group.ID] == nil {
			stub.groupPets[group.ID] = make(map[uint]bool)
		}
		stub.groupPets[group.ID][petID] = true
	}
	return nil
}

func (stub *groupRepositoryStub) UpdateDetails(groupID uint, updates map[string]any) (int64, error) {
	group, found := stub.groups[groupID]
	if !found {
		return 0, nil
	}
	if name, ok := updates["name"].(string); ok {
		group.Name = name
	}
	if description, ok := updates["description"].(string); ok {
		group.Description = description
	}
	stub.groups[groupID] = group
	return 1, nil
}

func (stub *groupRepositoryStub) FindMembership(groupID uint, userID uint) (models.GroupMember, bool, error) {
	membership, found := stub.memberships[groupID][userID]
	return membership, found, nil
}

func (stub *groupRepositoryStub) ListMembers(groupID uint) ([]models.GroupMember, error) {
	members := make([]models.GroupMember, 0, len(stub.memberships[groupID]))
	for _, membership := range stub.memberships[groupID] {
		members = append(members, membership)
	}
	return members, nil
}

func (stub *groupRepositoryStub) ListGroupsForUser(userID uint) ([]models.Group, error) {
	var groups []models.Group
	for groupID, members := range stub.memberships {
		if _, found := members[userID]; found {
			groups = append(groups, stub.groups[groupID])
		}
	}
	return groups, nil
}

func (stub *groupRepositoryStub) PromotePending(groupID uint, userID uint) (int64, error) {
	membership, found := stub.memberships[groupID][userID]
	if !found || membership.Role != models.RolePending {
		return 0, nil
	}
	membership.Role = models.RoleMember
	stub.memberships[groupID][userID] = membership
	return 1, nil
}

func (stub *groupRepositoryStub) RemoveMembership(groupID uint, userID uint) (int64, error) {
	if _, found := stub.memberships[groupID][userID]; !found {
		return 0, nil
	}
	delete(stub.memberships[groupID], userID)
	return 1, nil
}

func (stub *groupRepositoryStub) CountOwners(groupID uint) (int64, error) {
	var owners int64
	for _, membership := range stub.memberships[groupID] {
		if membership.Role == models.RoleOwner {
			owners++
		}
	}
	return owners, nil
}

func (stub *groupRepositoryStub) PetBelongsToGroup(groupID uint, petID uint) (bool, error) {
	return stub.groupPets[groupID][petID], nil
}

func (stub *groupRepositoryStub) AssignPet(groupID uint, petID uint) error {
	if stub.groupPets[groupID] == nil {
		stub.groupPets[groupID] = make(map[uint]bool)
	}
	stub.groupPets[groupID][petID] = true
	return nil
}

func (stub *groupRepositoryStub) UnassignPet(groupID uint, petID uint) (int64, error) {
	if !stub.groupPets[groupID][petID] {
		return 0, nil
	}
	delete(stub.groupPets[groupID], petID)
	return 1, nil
}

type groupPetRepositoryStub struct {
	owners map[uint]uint
}

func (stub *groupPetRepositoryStub) FindOwnedByID(petID uint, ownerID uint) (models.Pet, error) {
	if stub.owners[petID] != ownerID {
		return models.Pet{}, ErrPetNotFound
	}
	return models.Pet{ID: petID, OwnerID: ownerID}, nil
}

type inviteCreatorStub struct {
	created []models.GroupInviteCode
}

func (stub *inviteCreatorStub) Create(invite *models.GroupInviteCode) error {
	invite.ID = uint(len(stub.created) + 1)
	stub.created = append(stub.created, *invite)
	return nil
}

func (stub *inviteCreatorStub) ListByGroup(groupID uint) ([]models.GroupInviteCode, error) {
	var invites []models.GroupInviteCode
	for _, invite := range stub.created {
		if invite.GroupID == groupID {
			invites = append(invites, invite)
		}
	}
	return invites, nil
}

type membershipNotifierStub struct {
	approved []uint
	removed  []uint
}

func (stub *membershipNotifierStub) JoinApproved(groupID uint, userID uint) error {
	stub.approved = append(stub.approved, userID)
	return nil
}

func (stub *membershipNotifierStub) MemberRemoved(groupID uint, userID uint) error {
	stub.removed = append(stub.removed, userID)
	return nil
}

func newGroupFixture() (*GroupService, *groupRepositoryStub, *groupPetRepositoryStub, *inviteCreatorStub, *membershipNotifierStub) {
	groups := newGroupRepositoryStub()
	pets := &groupPetRepositoryStub{owners: make(map[uint]uint)}
	invites := &inviteCreatorStub{}
	notifier := &membershipNotifierStub{}
	return NewGroupService(groups, pets, invites, notifier), groups, pets, invites, notifier
}

func TestCreateGroupMakesCreatorOwnerAndAttachesPets(t *testing.T) {
	t.Parallel()

	service, groups, pets, _, _ := newGroupFixture()
	pets.owners[40] = 1

	group, err := service.Create(1, "  Maple Street  ", "neighbours", []uint{40})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if group.Name != "Maple Street" {
		t.Fatalf("expected trimmed name, got %q", group.Name)
	}
	membership, found, _ := groups.FindMembership(group.ID, 1)
	if !found || membership.Role != models.RoleOwner {
		t.Fatalf("expected creator owner membership, got %+v found=%v", membership, found)
	}
	if !groups.groupPets[group.ID][40] {
		t.Fatal("expected pet attached to group")
	}
}

func TestCreateGroupRejectsForeignPets(t *testing.T) {
	t.Parallel()

	service, _, pets, _, _ := newGroupFixture()
	pets.owners[40] = 9

	if _, err := service.Create(1, "Maple Street", "", []uint{40}); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected PetNotFound for a pet owned by someone else, got %v", err)
	}
}

func TestUpdateDetailsIsOwnerGated(t *testing.T) {
	t.Parallel()

	service, groups, _, _, _ := newGroupFixture()
	group, err := service.Create(1, "Maple Street", "neighbours", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	groups.addMember(group.ID, 2, models.RoleMember)

	if _, err := service.UpdateDetails(group.ID, 2, "Oak Street", ""); !errors.Is(err, ErrNotGroupOwner) {
		t.Fatalf("member rename: expected NotGroupOwner, got %v", err)
	}
	if _, err := service.UpdateDetails(group.ID, 9, "Oak Street", ""); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("outsider rename: expected GroupNotFound, got %v", err)
	}

	updated, err := service.UpdateDetails(group.ID, 1, "  Oak Street  ", "  new neighbours  ")
	if err != nil {
		t.Fatalf("owner rename failed: %v", err)
	}
	if updated.Name != "Oak Street" || updated.Description != "new neighbours" {
		t.Fatalf("expected trimmed update, got %+v", updated)
	}

	kept, err := service.UpdateDetails(group.ID, 1, "", "only the blurb")
	if err != nil {
		t.Fatalf("describe failed: %v", err)
	}
	if kept.Name != "Oak Street" || kept.Description != "only the blurb" {
		t.Fatalf("empty name must keep the current one, got %+v", kept)
	}
}

func TestApprovePendingPromotesAndNotifies(t *testing.T) {
	t.Parallel()

	service, groups, _, _, notifier := newGroupFixture()
	groups.addMember(20, 1, models.RoleOwner)
	groups.addMember(20, 7, models.RolePending)

	if err := service.ApprovePending(20, 1, 7); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	membership, _, _ := groups.FindMembership(20, 7)
	if membership.Role != models.RoleMember {
		t.Fatalf("expected promotion to member, got %q", membership.Role)
	}
	if len(notifier.approved) != 1 || notifier.approved[0] != 7 {
		t.Fatalf("expected approval notification for 7, got %v", notifier.approved)
	}

	if err := service.ApprovePending(20, 1, 7); !errors.Is(err, ErrNoPendingMember) {
		t.Fatalf("expected NoPendingMember on second approve, got %v", err)
	}
}

func TestApprovePendingRequiresOwner(t *testing.T) {
	t.Parallel()

	service, groups, _, _, _ := newGroupFixture()
	groups.addMember(20, 1, models.RoleOwner)
	groups.addMember(20, 2, models.RoleMember)
	groups.addMember(20, 7, models.RolePending)

	if err := service.ApprovePending(20, 2, 7); !errors.Is(err, ErrNotGroupOwner) {
		t.Fatalf("expected NotGroupOwner for member, got %v", err)
	}
	if err := service.ApprovePending(20, 9, 7); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected GroupNotFound for outsider, got %v", err)
	}
}

func TestRemoveMemberRefusesLastOwner(t *testing.T) {
	t.Parallel()

	service, groups, _, _, _ := newGroupFixture()
	groups.addMember(20, 1, models.RoleOwner)
	groups.addMember(20, 2, models.RoleMember)

	if err := service.RemoveMember(20, 1, 1); !errors.Is(err, ErrLastOwner) {
		t.Fatalf("expected LastOwner, got %v", err)
	}

	groups.addMember(20, 3, models.RoleOwner)
	if err := service.RemoveMember(20, 1, 1); err != nil {
		t.Fatalf("expected leave to succeed with a second owner, got %v", err)
	}
}

func TestRemoveMemberSelfLeaveAndOwnerRemoval(t *testing.T) {
	t.Parallel()

	service, groups, _, _, notifier := newGroupFixture()
	groups.addMember(20, 1, models.RoleOwner)
	groups.addMember(20, 2, models.RoleMember)
	groups.addMember(20, 7, models.RolePending)

	// Members may leave on their own; no notification for self-removal.
	if err := service.RemoveMember(20, 2, 2); err != nil {
		t.Fatalf("self leave failed: %v", err)
	}
	if len(notifier.removed) != 0 {
		t.Fatalf("expected no notification for self leave, got %v", notifier.removed)
	}

	// Declining a pending request is a removal by the owner.
	if err := service.RemoveMember(20, 1, 7); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if len(notifier.removed) != 1 || notifier.removed[0] != 7 {
		t.Fatalf("expected removal notification for 7, got %v", notifier.removed)
	}

	if err := service.RemoveMember(20, 1, 2); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected GroupNotFound for already removed member, got %v", err)
	}
}

func TestRemoveMemberRequiresOwnerForOthers(t *testing.T) {
	t.Parallel()

	service, groups, _, _, _ := newGroupFixture()
	groups.addMember(20, 1, models.RoleOwner)
	groups.addMember(20, 2, models.RoleMember)
	groups.addMember(20, 3, models.RoleMember)

	if err := service.RemoveMember(20, 2, 3); !errors.Is(err, ErrNotGroupOwner) {
		t.Fatalf("expected NotGroupOwner, got %v", err)
	}
}

func TestCreateInviteDefaultsAndAlphabet(t *testing.T) {
	t.Parallel()

	service, groups, _, invites, _ := newGroupFixture()
	groups.addMember(20, 1, models.RoleOwner)
	now := time.Now()

	invite, err := service.CreateInvite(20, 1, 0, 0, false, now)
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}
	if invite.MaxUses != 1 {
		t.Fatalf("expected max uses floor of 1, got %d", invite.MaxUses)
	}
	if !invite.ExpiresAt.Equal(now.Add(7 * 24 * time.Hour)) {
		t.Fatalf("expected default week-long expiry, got %v", invite.ExpiresAt)
	}
	if len(invite.Code) != inviteCodeLength {
		t.Fatalf("expected %d-char code, got %q", inviteCodeLength, invite.Code)
	}
	for _, r := range invite.Code {
		if !strings.ContainsRune(inviteCodeAlphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", invite.Code, r)
		}
	}
	if len(invites.created) != 1 {
		t.Fatalf("expected one invite persisted, got %d", len(invites.created))
	}

	listed, err := service.ListInvites(20, 1)
	if err != nil {
		t.Fatalf("list invites failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Code != invite.Code {
		t.Fatalf("expected the minted invite listed, got %+v", listed)
	}
	if _, err := service.ListInvites(20, 9); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected GroupNotFound for outsider listing, got %v", err)
	}
}

func TestAssignPetIsIdempotentAndChecksOwnership(t *testing.T) {
	t.Parallel()

	service, groups, pets, _, _ := newGroupFixture()
	groups.addMember(20, 1, models.RoleOwner)
	pets.owners[40] = 1
	pets.owners[41] = 9

	if err := service.AssignPet(20, 1, 40); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := service.AssignPet(20, 1, 40); err != nil {
		t.Fatalf("second assign should be a no-op, got %v", err)
	}
	if err := service.AssignPet(20, 1, 41); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected PetNotFound for foreign pet, got %v", err)
	}

	if err := service.UnassignPet(20, 1, 40); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	if err := service.UnassignPet(20, 1, 40); !errors.Is(err, ErrPetNotInGroup) {
		t.Fatalf("expected PetNotInGroup for detached pet, got %v", err)
	}
}
