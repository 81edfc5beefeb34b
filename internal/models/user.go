package models

import "time"

const (
	PlanFree = "free"
	PlanPlus = "plus"
	PlanPro  = "pro"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DisplayName  string    `gorm:"not null" json:"display_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Plan         string    `gorm:"not null;default:free" json:"plan"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
