package models

import "time"

const (
	SpeciesDog   = "dog"
	SpeciesCat   = "cat"
	SpeciesBird  = "bird"
	SpeciesFish  = "fish"
	SpeciesHouse = "house"
	SpeciesPlant = "plant"
	SpeciesOther = "other"
)

// Pet covers every sitting subject: animals, houses and plants share one shape.
type Pet struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	CreatorID   uint       `gorm:"not null" json:"creator_id"`
	Name        string     `gorm:"not null" json:"name"`
	Species     string     `gorm:"not null;default:other" json:"species"`
	Breed       string     `json:"breed,omitempty"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}
