package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"checkinly-backend/events"
	"checkinly-backend/models"
	"checkinly-backend/utils"
)

type SmartLockService struct {
	DB     *gorm.DB
	Events events.Publisher
	Now    func() time.Time
}

func NewSmartLockService(db *gorm.DB, pub events.Publisher) *SmartLockService {
	return &SmartLockService{DB: db, Events: pub, Now: time.Now}
}

type SmartLockInput struct {
	RoomID         string `json:"room_id" validate:"required"`
	LockID         string `json:"lock_id" validate:"required"`
	Status         string `json:"status" validate:"omitempty,oneof=locked unlocked"`
	BatteryLevel   *int   `json:"battery_level" validate:"omitempty,gte=0,lte=100"`
	SignalStrength *int   `json:"signal_strength" validate:"omitempty,gte=0,lte=5"`
}

type SmartLockUpdateInput struct {
	RoomID         *string `json:"room_id" validate:"omitempty,min=1"`
	LockID         *string `json:"lock_id" validate:"omitempty,min=1"`
	BatteryLevel   *int    `json:"battery_level" validate:"omitempty,gte=0,lte=100"`
	SignalStrength *int    `json:"signal_strength" validate:"omitempty,gte=0,lte=5"`
	ErrorMessage   *string `json:"error_message"`
}

type LockStatusInput struct {
	Status string `json:"status" validate:"required,oneof=locked unlocked"`
}

// HeartbeatInput is the telemetry a lock reports on each ping.
type HeartbeatInput struct {
	BatteryLevel   *int    `json:"battery_level" validate:"omitempty,gte=0,lte=100"`
	SignalStrength *int    `json:"signal_strength" validate:"omitempty,gte=0,lte=5"`
	ErrorMessage   *string `json:"error_message"`
}

func (s *SmartLockService) markOnline(locks []models.SmartLock) {
	now := s.Now()
	for i := range locks {
		locks[i].Online = models.IsOnline(locks[i].LastPing, now)
	}
}

// ----------------------------------------------------
// List (room joined, online computed)
// ----------------------------------------------------
func (s *SmartLockService) List(ctx context.Context, hotelID string) ([]models.SmartLock, error) {
	var locks []models.SmartLock
	err := s.DB.WithContext(ctx).
		Preload("Room").
		Where("hotel_id = ?", hotelID).
		Order("lock_id ASC").
		Find(&locks).Error
	if err != nil {
		return nil, err
	}
	s.markOnline(locks)
	return locks, nil
}

func (s *SmartLockService) Get(ctx context.Context, hotelID, id string) (*models.SmartLock, error) {
	var lock models.SmartLock
	err := s.DB.WithContext(ctx).
		Preload("Room").
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&lock).Error
	if err != nil {
		return nil, dbError(err)
	}
	lock.Online = models.IsOnline(lock.LastPing, s.Now())
	return &lock, nil
}

func (s *SmartLockService) lockIDTaken(ctx context.Context, hotelID, lockID, excludeID string) (bool, error) {
	q := s.DB.WithContext(ctx).Model(&models.SmartLock{}).Where("hotel_id = ? AND lock_id = ?", hotelID, lockID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ----------------------------------------------------
// Create
// ----------------------------------------------------
func (s *SmartLockService) Create(ctx context.Context, hotelID string, in SmartLockInput) (*models.SmartLock, error) {
	in.LockID = strings.TrimSpace(in.LockID)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if _, err := loadRoom(s.DB.WithContext(ctx), hotelID, in.RoomID); err != nil {
		return nil, err
	}
	taken, err := s.lockIDTaken(ctx, hotelID, in.LockID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fieldError("lock_id", "Lock ID "+in.LockID+" is already registered", ErrDuplicateLock)
	}

	lock := &models.SmartLock{
		HotelID:        hotelID,
		RoomID:         in.RoomID,
		LockID:         in.LockID,
		Status:         in.Status,
		BatteryLevel:   100,
		SignalStrength: 5,
	}
	if lock.Status == "" {
		lock.Status = models.LockLocked
	}
	if in.BatteryLevel != nil {
		lock.BatteryLevel = *in.BatteryLevel
	}
	if in.SignalStrength != nil {
		lock.SignalStrength = *in.SignalStrength
	}
	if err := s.DB.WithContext(ctx).Create(lock).Error; err != nil {
		return nil, dbError(err)
	}
	return s.Get(ctx, hotelID, lock.ID)
}

func (s *SmartLockService) Update(ctx context.Context, hotelID, id string, in SmartLockUpdateInput) (*models.SmartLock, error) {
	in.LockID = trimPtr(in.LockID)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	lock, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.RoomID != nil && *in.RoomID != lock.RoomID {
		if _, err := loadRoom(s.DB.WithContext(ctx), hotelID, *in.RoomID); err != nil {
			return nil, err
		}
		updates["room_id"] = *in.RoomID
	}
	if in.LockID != nil && *in.LockID != lock.LockID {
		taken, err := s.lockIDTaken(ctx, hotelID, *in.LockID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fieldError("lock_id", "Lock ID "+*in.LockID+" is already registered", ErrDuplicateLock)
		}
		updates["lock_id"] = *in.LockID
	}
	if in.BatteryLevel != nil {
		updates["battery_level"] = *in.BatteryLevel
	}
	if in.SignalStrength != nil {
		updates["signal_strength"] = *in.SignalStrength
	}
	if in.ErrorMessage != nil {
		updates["error_message"] = *in.ErrorMessage
	}
	if len(updates) == 0 {
		return lock, nil
	}
	if err := s.DB.WithContext(ctx).Model(&models.SmartLock{}).Where("id = ?", lock.ID).Updates(updates).Error; err != nil {
		return nil, dbError(err)
	}
	return s.Get(ctx, hotelID, id)
}

// ----------------------------------------------------
// SetStatus locks or unlocks; offline locks cannot be driven.
// ----------------------------------------------------
func (s *SmartLockService) SetStatus(ctx context.Context, hotelID, id string, in LockStatusInput) (*models.SmartLock, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	lock, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}
	if !lock.Online {
		return nil, ErrLockOffline
	}

	now := s.Now().UTC()
	err = s.DB.WithContext(ctx).Model(&models.SmartLock{}).Where("id = ?", lock.ID).Updates(map[string]interface{}{
		"status":         in.Status,
		"last_heartbeat": now,
		"last_ping":      now,
	}).Error
	if err != nil {
		return nil, err
	}

	roomNumber := ""
	if lock.Room != nil {
		roomNumber = lock.Room.RoomNumber
	}
	utils.Logger.Infof("🔐 lock %s -> %s", lock.LockID, in.Status)
	publish(ctx, s.Events, events.New(events.LockStatusChanged, hotelID, map[string]string{
		"lock_id":     lock.LockID,
		"room_number": roomNumber,
		"status":      in.Status,
	}))
	return s.Get(ctx, hotelID, id)
}

// Heartbeat records device telemetry and marks the lock as seen now.
func (s *SmartLockService) Heartbeat(ctx context.Context, hotelID, id string, in HeartbeatInput) (*models.SmartLock, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	lock, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	updates := map[string]interface{}{
		"last_ping":      now,
		"last_heartbeat": now,
	}
	if in.BatteryLevel != nil {
		updates["battery_level"] = *in.BatteryLevel
	}
	if in.SignalStrength != nil {
		updates["signal_strength"] = *in.SignalStrength
	}
	if in.ErrorMessage != nil {
		updates["error_message"] = *in.ErrorMessage
	}
	if err := s.DB.WithContext(ctx).Model(&models.SmartLock{}).Where("id = ?", lock.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, hotelID, id)
}

func (s *SmartLockService) Delete(ctx context.Context, hotelID, id string) error {
	res := s.DB.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.SmartLock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func batteryLabel(level int) string {
	return strconv.Itoa(level) + "%"
}
