package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/gorm"

	"checkinly-backend/models"
	"checkinly-backend/utils"
)

// HotelSettings is the hotel profile as shown on the settings page.
type HotelSettings struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Timezone string `json:"timezone"`
}

type NotificationSettings struct {
	CheckIns    bool `json:"check_ins"`
	Payments    bool `json:"payments"`
	Maintenance bool `json:"maintenance"`
	Security    bool `json:"security"`
	LowBattery  bool `json:"low_battery"`
}

func DefaultHotelSettings() HotelSettings {
	return HotelSettings{
		Name:     "Grand Plaza Hotel",
		Address:  "123 Main Street, City, State 12345",
		Phone:    "+1 (555) 123-4567",
		Email:    "info@grandplaza.com",
		Timezone: "UTC-5 (Eastern)",
	}
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		CheckIns:    true,
		Payments:    true,
		Maintenance: false,
		Security:    true,
		LowBattery:  true,
	}
}

// notificationStore persists per-hotel notification toggles.
type notificationStore interface {
	Load(ctx context.Context, hotelID string) (NotificationSettings, bool, error)
	Save(ctx context.Context, hotelID string, s NotificationSettings) error
}

type dbNotificationStore struct {
	db *gorm.DB
}

func (st dbNotificationStore) Load(ctx context.Context, hotelID string) (NotificationSettings, bool, error) {
	var row models.NotificationSetting
	err := st.db.WithContext(ctx).Where("hotel_id = ?", hotelID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotificationSettings{}, false, nil
	}
	if err != nil {
		return NotificationSettings{}, false, err
	}
	return NotificationSettings{
		CheckIns:    row.CheckIns,
		Payments:    row.Payments,
		Maintenance: row.Maintenance,
		Security:    row.Security,
		LowBattery:  row.LowBattery,
	}, true, nil
}

func (st dbNotificationStore) Save(ctx context.Context, hotelID string, s NotificationSettings) error {
	return st.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.NotificationSetting
		err := tx.Where("hotel_id = ?", hotelID).First(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row.HotelID = hotelID
		row.CheckIns = s.CheckIns
		row.Payments = s.Payments
		row.Maintenance = s.Maintenance
		row.Security = s.Security
		row.LowBattery = s.LowBattery
		return tx.Save(&row).Error
	})
}

// fileNotificationStore keeps one JSON file per hotel; used when the
// notification_settings table is missing.
type fileNotificationStore struct {
	dir string
	mu  sync.Mutex
}

func (st *fileNotificationStore) path(hotelID string) string {
	return filepath.Join(st.dir, "notifications-"+filepath.Base(hotelID)+".json")
}

func (st *fileNotificationStore) Load(_ context.Context, hotelID string) (NotificationSettings, bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	raw, err := os.ReadFile(st.path(hotelID))
	if errors.Is(err, os.ErrNotExist) {
		return NotificationSettings{}, false, nil
	}
	if err != nil {
		return NotificationSettings{}, false, err
	}
	var s NotificationSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return NotificationSettings{}, false, fmt.Errorf("decode settings file: %w", err)
	}
	return s, true, nil
}

func (st *fileNotificationStore) Save(_ context.Context, hotelID string, s NotificationSettings) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.path(hotelID), raw, 0o644)
}

type SettingsService struct {
	DB    *gorm.DB
	store notificationStore
}

// NewSettingsService falls back to files under fallbackDir when the
// notification_settings table does not exist.
func NewSettingsService(db *gorm.DB, fallbackDir string) *SettingsService {
	s := &SettingsService{DB: db}
	if db.Migrator().HasTable(&models.NotificationSetting{}) {
		s.store = dbNotificationStore{db: db}
	} else {
		utils.Logger.Warnf("⚠️ notification_settings table missing; storing settings under %s", fallbackDir)
		s.store = &fileNotificationStore{dir: fallbackDir}
	}
	return s
}

// ----------------------------------------------------
// Hotel settings live on the hotel row; blank fields read as defaults.
// ----------------------------------------------------
func (s *SettingsService) HotelSettings(ctx context.Context, hotelID string) (HotelSettings, error) {
	var hotel models.Hotel
	if err := s.DB.WithContext(ctx).First(&hotel, "id = ?", hotelID).Error; err != nil {
		return HotelSettings{}, dbError(err)
	}
	def := DefaultHotelSettings()
	out := HotelSettings{
		Name:     hotel.Name,
		Address:  hotel.Address,
		Phone:    hotel.Phone,
		Email:    hotel.Email,
		Timezone: hotel.Timezone,
	}
	if out.Name == "" {
		out.Name = def.Name
	}
	if out.Address == "" {
		out.Address = def.Address
	}
	if out.Phone == "" {
		out.Phone = def.Phone
	}
	if out.Email == "" {
		out.Email = def.Email
	}
	if out.Timezone == "" {
		out.Timezone = def.Timezone
	}
	return out, nil
}

func (s *SettingsService) SaveHotelSettings(ctx context.Context, hotelID string, in HotelSettings) (HotelSettings, error) {
	if err := validateStruct(in); err != nil {
		return HotelSettings{}, err
	}
	res := s.DB.WithContext(ctx).Model(&models.Hotel{}).Where("id = ?", hotelID).Updates(map[string]interface{}{
		"name":     in.Name,
		"address":  in.Address,
		"phone":    in.Phone,
		"email":    in.Email,
		"timezone": in.Timezone,
	})
	if res.Error != nil {
		return HotelSettings{}, res.Error
	}
	if res.RowsAffected == 0 {
		return HotelSettings{}, ErrNotFound
	}
	return s.HotelSettings(ctx, hotelID)
}

func (s *SettingsService) NotificationSettings(ctx context.Context, hotelID string) (NotificationSettings, error) {
	ns, ok, err := s.store.Load(ctx, hotelID)
	if err != nil {
		return NotificationSettings{}, err
	}
	if !ok {
		return DefaultNotificationSettings(), nil
	}
	return ns, nil
}

func (s *SettingsService) SaveNotificationSettings(ctx context.Context, hotelID string, in NotificationSettings) (NotificationSettings, error) {
	if err := s.store.Save(ctx, hotelID, in); err != nil {
		return NotificationSettings{}, err
	}
	return in, nil
}

// ResetNotificationSettings restores the defaults.
func (s *SettingsService) ResetNotificationSettings(ctx context.Context, hotelID string) (NotificationSettings, error) {
	return s.SaveNotificationSettings(ctx, hotelID, DefaultNotificationSettings())
}
