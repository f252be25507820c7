package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
)

type Booking struct {
	Base

	HotelID      string         `json:"hotel_id" gorm:"type:char(36);index;not null"`
	GuestID      string         `json:"guest_id" gorm:"type:char(36);index;not null"`
	RoomID       string         `json:"room_id" gorm:"type:char(36);index;not null"`
	CheckInDate  datatypes.Date `json:"check_in_date"`
	CheckOutDate datatypes.Date `json:"check_out_date"`
	TotalAmount  float64        `json:"total_amount"`
	Status       string         `json:"status" gorm:"type:varchar(20);index;not null"`

	Guest *Guest `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Room  *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// Nights is the stay length in whole days, never less than one.
func (b Booking) Nights() int {
	n := int(time.Time(b.CheckOutDate).Sub(time.Time(b.CheckInDate)).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}
