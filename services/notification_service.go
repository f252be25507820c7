package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"checkinly-backend/events"
	"checkinly-backend/models"
	"checkinly-backend/utils"
)

// Notification categories, each switched by one NotificationSettings toggle.
const (
	CategoryCheckIns    = "check_ins"
	CategoryPayments    = "payments"
	CategoryMaintenance = "maintenance"
	CategorySecurity    = "security"
	CategoryLowBattery  = "low_battery"
)

type NotificationService struct {
	DB       *gorm.DB
	Settings *SettingsService
}

func NewNotificationService(db *gorm.DB, settings *SettingsService) *NotificationService {
	return &NotificationService{DB: db, Settings: settings}
}

type NotificationList struct {
	Items       []models.Notification `json:"items"`
	UnreadCount int64                 `json:"unread_count"`
}

func enabled(ns NotificationSettings, category string) bool {
	switch category {
	case CategoryCheckIns:
		return ns.CheckIns
	case CategoryPayments:
		return ns.Payments
	case CategoryMaintenance:
		return ns.Maintenance
	case CategorySecurity:
		return ns.Security
	case CategoryLowBattery:
		return ns.LowBattery
	}
	return true
}

// Raise stores a notification unless its category is switched off or an
// unread one with the same sourceKey already exists. It reports whether a
// row was written.
func (s *NotificationService) Raise(ctx context.Context, hotelID, category string, n models.Notification, sourceKey string) (bool, error) {
	if s.Settings != nil {
		ns, err := s.Settings.NotificationSettings(ctx, hotelID)
		if err != nil {
			return false, err
		}
		if !enabled(ns, category) {
			return false, nil
		}
	}

	if sourceKey != "" {
		var open int64
		if err := s.DB.WithContext(ctx).Model(&models.Notification{}).
			Where("hotel_id = ? AND source_key = ? AND is_read = ?", hotelID, sourceKey, false).
			Count(&open).Error; err != nil {
			return false, err
		}
		if open > 0 {
			return false, nil
		}
	}

	n.HotelID = hotelID
	n.SourceKey = sourceKey
	if n.Type == "" {
		n.Type = models.NotifyInfo
	}
	if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
		return false, err
	}
	return true, nil
}

// HandleEvent turns domain events into dashboard notifications.
func (s *NotificationService) HandleEvent(ctx context.Context, ev events.Event) error {
	if ev.HotelID == "" {
		utils.Logger.Debugf("event %s has no hotel; nothing to notify", ev.Type)
		return nil
	}
	d := ev.Data

	var (
		category string
		n        models.Notification
	)
	switch ev.Type {
	case events.BookingCreated:
		category = CategoryCheckIns
		n = models.Notification{
			Title:   "New booking",
			Message: fmt.Sprintf("%s booked room %s from %s", d["guest_name"], d["room_number"], d["check_in"]),
			Type:    models.NotifyInfo,
		}
	case events.GuestCheckedIn:
		category = CategoryCheckIns
		n = models.Notification{
			Title:   "Guest checked in",
			Message: fmt.Sprintf("%s checked into room %s", d["guest_name"], d["room_number"]),
			Type:    models.NotifySuccess,
		}
	case events.PaymentCompleted:
		category = CategoryPayments
		n = models.Notification{
			Title:   "Payment received",
			Message: fmt.Sprintf("Payment of $%s received via %s", d["amount"], d["method"]),
			Type:    models.NotifySuccess,
		}
	case events.LockStatusChanged:
		category = CategorySecurity
		n = models.Notification{
			Title:   "Lock " + d["status"],
			Message: fmt.Sprintf("Lock %s on room %s is now %s", d["lock_id"], d["room_number"], d["status"]),
			Type:    models.NotifyInfo,
		}
	case events.RoomMaintenance:
		category = CategoryMaintenance
		n = models.Notification{
			Title:   "Room under maintenance",
			Message: fmt.Sprintf("Room %s was moved to maintenance", d["room_number"]),
			Type:    models.NotifyWarning,
		}
	default:
		return nil
	}

	_, err := s.Raise(ctx, ev.HotelID, category, n, "")
	return err
}

// ----------------------------------------------------
// Inbox operations
// ----------------------------------------------------
func (s *NotificationService) List(ctx context.Context, hotelID string, limit int) (*NotificationList, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	out := &NotificationList{}
	db := s.DB.WithContext(ctx)
	if err := db.Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out.Items).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Notification{}).
		Where("hotel_id = ? AND is_read = ?", hotelID, false).
		Count(&out.UnreadCount).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, hotelID, id string) error {
	res := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("hotel_id = ? AND id = ?", hotelID, id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := s.DB.WithContext(ctx).Model(&models.Notification{}).Where("hotel_id = ? AND id = ?", hotelID, id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, hotelID string) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("hotel_id = ? AND is_read = ?", hotelID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (s *NotificationService) Delete(ctx context.Context, hotelID, id string) error {
	res := s.DB.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
