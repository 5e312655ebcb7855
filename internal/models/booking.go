package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DogID uint `gorm:"not null;index:idx_bookings_dog_date" json:"dogId"`
	Dog   Dog  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Date is the calendar day at UTC midnight.
	Date         time.Time `gorm:"type:date;not null;index:idx_bookings_dog_date" json:"date"`
	CheckInTime  time.Time `gorm:"not null" json:"checkInTime"`
	CheckOutTime time.Time `gorm:"not null" json:"checkOutTime"`

	Status string `gorm:"size:20;not null" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	GrandTotal decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"grandTotal"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingService is one priced line of a booking.
type BookingService struct {
	BookingID uint    `gorm:"primaryKey" json:"bookingId"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"primaryKey" json:"serviceId"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	Quantity int `gorm:"not null;default:1" json:"quantity"`
}
