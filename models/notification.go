package models

const (
	NotifyInfo    = "info"
	NotifyWarning = "warning"
	NotifySuccess = "success"
	NotifyError   = "error"
)

type Notification struct {
	Base

	HotelID string `json:"hotel_id" gorm:"type:char(36);index;not null"`
	Title   string `json:"title" gorm:"type:varchar(255)"`
	Message string `json:"message" gorm:"type:text"`
	Type    string `json:"type" gorm:"type:varchar(20)"`
	Read    bool   `json:"read" gorm:"column:is_read;index"`
	// SourceKey dedupes notifications raised repeatedly for one condition.
	SourceKey string `json:"-" gorm:"type:varchar(150);index"`
}

// NotificationSetting toggles which notification kinds a hotel receives.
type NotificationSetting struct {
	Base

	HotelID     string `json:"hotel_id" gorm:"type:char(36);uniqueIndex;not null"`
	CheckIns    bool   `json:"check_ins"`
	Payments    bool   `json:"payments"`
	Maintenance bool   `json:"maintenance"`
	Security    bool   `json:"security"`
	LowBattery  bool   `json:"low_battery"`
}
