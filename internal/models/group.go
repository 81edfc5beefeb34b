package models

import "time"

const (
	RoleOwner   = "owner"
	RoleMember  = "member"
	RolePending = "pending"
)

type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatorID   uint      `gorm:"not null" json:"creator_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// GroupMember joins users to groups. A pending row is a join request awaiting
// owner approval and grants no visibility or claim rights.
type GroupMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;uniqueIndex:uidx_group_user" json:"group_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_group_user" json:"user_id"`
	Role      string    `gorm:"not null;default:member" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type GroupPet struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	GroupID uint `gorm:"not null;uniqueIndex:uidx_group_pet" json:"group_id"`
	PetID   uint `gorm:"not null;uniqueIndex:uidx_group_pet" json:"pet_id"`
}

// IsActiveRole reports whether a membership role carries full member rights.
func IsActiveRole(role string) bool {
	return role == RoleOwner || role == RoleMember
}
