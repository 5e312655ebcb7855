package models

import "time"

type Dog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Breed string `gorm:"size:100" json:"breed"`

	OwnerID uint `gorm:"not null;index" json:"ownerId"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PhotoURL string `gorm:"size:500" json:"photoUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
