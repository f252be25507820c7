package models

import "gorm.io/datatypes"

type Guest struct {
	Base

	HotelID     string          `json:"hotel_id" gorm:"type:char(36);index;not null"`
	FirstName   string          `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName    string          `json:"last_name" gorm:"type:varchar(100);not null"`
	Email       string          `json:"email" gorm:"type:varchar(255);index"`
	Phone       string          `json:"phone" gorm:"type:varchar(50)"`
	IDType      string          `json:"id_type" gorm:"column:id_type;type:varchar(50)"`
	IDNumber    string          `json:"id_number" gorm:"column:id_number;type:varchar(100)"`
	Address     string          `json:"address" gorm:"type:varchar(500)"`
	City        string          `json:"city" gorm:"type:varchar(100)"`
	Country     string          `json:"country" gorm:"type:varchar(100)"`
	DateOfBirth *datatypes.Date `json:"date_of_birth"`
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
