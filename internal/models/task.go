package models

import "time"

// Task is a unit of sitting work. Timing is a tagged union over DueMode:
// DueMode true uses DueDate, false uses DateRangeFrom/DateRangeTo. Claim and
// completion are two independent nullable pairs kept in lockstep by the
// claim engine; the wire shape stays flat for UI compatibility.
type Task struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CreatorID     uint       `gorm:"not null" json:"creator_id"`
	OwnerID       uint       `gorm:"not null;index" json:"owner_id"`
	PetID         uint       `gorm:"not null;index" json:"pet_id"`
	GroupID       uint       `gorm:"not null;index" json:"group_id"`
	Name          string     `gorm:"not null" json:"name"`
	Instructions  string     `json:"instructions,omitempty"`
	DueMode       bool       `gorm:"not null;default:true" json:"due_mode"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	DateRangeFrom *time.Time `json:"date_range_from,omitempty"`
	DateRangeTo   *time.Time `json:"date_range_to,omitempty"`

	ClaimedBy *uint      `gorm:"index" json:"claimed_by,omitempty"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`

	MarkedAsDoneBy       *uint      `json:"marked_as_done_by,omitempty"`
	MarkedAsDoneAt       *time.Time `json:"marked_as_done_at,omitempty"`
	Completed            bool       `gorm:"not null;default:false" json:"completed"`
	RequiresVerification bool       `gorm:"not null;default:false" json:"requires_verification"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
