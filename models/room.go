package models

import "gorm.io/datatypes"

const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
	RoomCleaning    = "cleaning"
)

var RoomStatuses = []string{RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning}

type Room struct {
	Base

	HotelID       string                      `json:"hotel_id" gorm:"type:char(36);index;not null"`
	RoomNumber    string                      `json:"room_number" gorm:"column:room_number;type:varchar(50);index;not null"`
	RoomType      string                      `json:"room_type" gorm:"column:room_type;type:varchar(50);not null"`
	Floor         int                         `json:"floor"`
	Capacity      int                         `json:"capacity"`
	PricePerNight float64                     `json:"price_per_night"`
	Status        string                      `json:"status" gorm:"type:varchar(20);index;not null"`
	Amenities     datatypes.JSONSlice[string] `json:"amenities"`
	Description   string                      `json:"description" gorm:"type:text"`
}
