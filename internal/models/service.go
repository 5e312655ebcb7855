package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry that can be attached to bookings.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:250" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Active      bool            `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
