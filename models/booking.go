package models

import (
	"time"
)

// Room types a booking may request.
const (
	RoomTypeSingle = "Single"
	RoomTypeDouble = "Double"
	RoomTypeSuite  = "Suite"
)

type Booking struct {
	Document

	// OwnerID is the id of the user who made the booking, empty for bookings created
	// without a caller identity.
	OwnerID   string    `gorm:"column:user_id;index;size:36" json:"userId,omitempty"`
	GuestName string    `gorm:"column:guest_name;size:255;not null" json:"guestName"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:64" json:"phone,omitempty"`
	RoomType  string    `gorm:"column:room_type;size:32;default:Single" json:"roomType"`
	CheckIn   time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut  time.Time `gorm:"column:check_out" json:"checkOut"`
	Guests    int       `gorm:"column:guests" json:"guests"`
}
