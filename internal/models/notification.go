package models

import "time"

const (
	NotificationTaskClaimed   = "task_claimed"
	NotificationTaskDone      = "task_done"
	NotificationJoinRequest   = "join_request"
	NotificationJoinApproved  = "join_approved"
	NotificationMemberJoined  = "member_joined"
	NotificationMemberRemoved = "member_removed"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"`
	GroupID   *uint     `json:"group_id,omitempty"`
	PetID     *uint     `json:"pet_id,omitempty"`
	TaskID    *uint     `json:"task_id,omitempty"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
