package models

type Hotel struct {
	Base

	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	Address  string `json:"address" gorm:"type:varchar(500)"`
	Phone    string `json:"phone" gorm:"type:varchar(50)"`
	Email    string `json:"email" gorm:"type:varchar(255)"`
	Timezone string `json:"timezone" gorm:"type:varchar(100)"`
}
