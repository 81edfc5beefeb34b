package api

import "time"

type registerInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileInput struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

type taskInput struct {
	Name                 string     `json:"name"`
	Instructions         string     `json:"instructions"`
	PetID                uint       `json:"pet_id"`
	GroupID              uint       `json:"group_id"`
	DueMode              bool       `json:"due_mode"`
	DueDate              *time.Time `json:"due_date"`
	DateRangeFrom        *time.Time `json:"date_range_from"`
	DateRangeTo          *time.Time `json:"date_range_to"`
	RequiresVerification bool       `json:"requires_verification"`
}

type completeInput struct {
	Completed bool `json:"completed"`
}

type groupInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PetIDs      []uint `json:"pet_ids"`
}

type inviteInput struct {
	MaxUses          int  `json:"max_uses"`
	TTLHours         int  `json:"ttl_hours"`
	RequiresApproval bool `json:"requires_approval"`
}

type assignPetInput struct {
	PetID uint `json:"pet_id"`
}

type petInput struct {
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	ImageURL    string     `json:"image_url"`
	Note        string     `json:"note"`
}
