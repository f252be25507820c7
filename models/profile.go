package models

const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleHousekeeping = "housekeeping"
)

// Profile links a user to the hotel they operate.
type Profile struct {
	Base

	UserID    string `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	HotelID   string `json:"hotel_id" gorm:"type:char(36);index;not null"`
	FirstName string `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string `json:"last_name" gorm:"type:varchar(100)"`
	Role      string `json:"role" gorm:"type:varchar(30);not null"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
