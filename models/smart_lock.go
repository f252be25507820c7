package models

import "time"

const (
	LockLocked   = "locked"
	LockUnlocked = "unlocked"
)

// LockOnlineWindow is how recent a ping must be for a lock to count as online.
const LockOnlineWindow = 5 * time.Minute

type SmartLock struct {
	Base

	HotelID        string     `json:"hotel_id" gorm:"type:char(36);index;not null"`
	RoomID         string     `json:"room_id" gorm:"type:char(36);index;not null"`
	LockID         string     `json:"lock_id" gorm:"type:varchar(64);index;not null"`
	Status         string     `json:"status" gorm:"type:varchar(20);not null"`
	BatteryLevel   int        `json:"battery_level"`
	SignalStrength int        `json:"signal_strength"`
	LastHeartbeat  *time.Time `json:"last_heartbeat"`
	LastPing       *time.Time `json:"last_ping"`
	ErrorMessage   string     `json:"error_message" gorm:"type:varchar(500)"`

	Room   *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Online bool  `json:"online" gorm:"-"`
}

// IsOnline reports whether lastPing falls inside LockOnlineWindow before now.
func IsOnline(lastPing *time.Time, now time.Time) bool {
	if lastPing == nil {
		return false
	}
	return now.Sub(*lastPing) < LockOnlineWindow
}
