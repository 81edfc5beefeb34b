package models

import "time"

type GroupInviteCode struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	GroupID          uint      `gorm:"not null;index" json:"group_id"`
	CreatorID        uint      `gorm:"not null" json:"creator_id"`
	Code             string    `gorm:"uniqueIndex;not null" json:"code"`
	Uses             int       `gorm:"not null;default:0" json:"uses"`
	MaxUses          int       `gorm:"not null;default:1" json:"max_uses"`
	ExpiresAt        time.Time `gorm:"not null" json:"expires_at"`
	RequiresApproval bool      `gorm:"not null;default:false" json:"requires_approval"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

// Redeemable reports whether the code can still be used at the given instant.
func (code GroupInviteCode) Redeemable(now time.Time) bool {
	return code.Uses < code.MaxUses && now.Before(code.ExpiresAt)
}
