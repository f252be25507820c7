package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"checkinly-backend/models"
	"checkinly-backend/utils"
)

// LockMonitor raises low-battery and offline notifications for every hotel.
type LockMonitor struct {
	DB                  *gorm.DB
	Notifications       *NotificationService
	LowBatteryThreshold int
	Now                 func() time.Time
}

func NewLockMonitor(db *gorm.DB, notifications *NotificationService, threshold int) *LockMonitor {
	return &LockMonitor{DB: db, Notifications: notifications, LowBatteryThreshold: threshold, Now: time.Now}
}

// Sweep checks all locks once and returns how many notifications it raised.
func (m *LockMonitor) Sweep(ctx context.Context) (int, error) {
	var locks []models.SmartLock
	if err := m.DB.WithContext(ctx).Preload("Room").Find(&locks).Error; err != nil {
		return 0, err
	}

	now := m.Now()
	raised := 0
	for _, lock := range locks {
		room := "unassigned"
		if lock.Room != nil {
			room = lock.Room.RoomNumber
		}

		if lock.BatteryLevel < m.LowBatteryThreshold {
			ok, err := m.Notifications.Raise(ctx, lock.HotelID, CategoryLowBattery, models.Notification{
				Title:   "Low battery",
				Message: "Lock " + lock.LockID + " on room " + room + " is at " + batteryLabel(lock.BatteryLevel),
				Type:    models.NotifyWarning,
			}, "low_battery:"+lock.ID)
			if err != nil {
				return raised, err
			}
			if ok {
				raised++
			}
		}

		if !models.IsOnline(lock.LastPing, now) {
			ok, err := m.Notifications.Raise(ctx, lock.HotelID, CategorySecurity, models.Notification{
				Title:   "Lock offline",
				Message: "Lock " + lock.LockID + " on room " + room + " has not reported in",
				Type:    models.NotifyError,
			}, "offline:"+lock.ID)
			if err != nil {
				return raised, err
			}
			if ok {
				raised++
			}
		}
	}

	if raised > 0 {
		utils.Logger.Infof("🔋 lock sweep raised %d notification(s)", raised)
	}
	return raised, nil
}
