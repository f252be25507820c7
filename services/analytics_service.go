package services

import (
	"context"
	"math"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"checkinly-backend/models"
)

type AnalyticsService struct {
	DB                  *gorm.DB
	LowBatteryThreshold int
}

func NewAnalyticsService(db *gorm.DB, lowBatteryThreshold int) *AnalyticsService {
	return &AnalyticsService{DB: db, LowBatteryThreshold: lowBatteryThreshold}
}

type RoomStatusCount struct {
	Status     string  `json:"status"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type RevenueSummary struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"this_week"`
	ThisMonth float64 `json:"this_month"`
}

type LockHealth struct {
	Total      int `json:"total"`
	Online     int `json:"online"`
	Offline    int `json:"offline"`
	LowBattery int `json:"low_battery"`
}

type DashboardSummary struct {
	TotalRooms    int64             `json:"total_rooms"`
	RoomStatuses  []RoomStatusCount `json:"room_statuses"`
	OccupancyRate float64           `json:"occupancy_rate"`
	ActiveGuests  int64             `json:"active_guests"`
	Revenue       RevenueSummary    `json:"revenue"`
	Locks         LockHealth        `json:"locks"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Summary computes the dashboard figures as of at.
func (s *AnalyticsService) Summary(ctx context.Context, hotelID string, at time.Time) (*DashboardSummary, error) {
	db := s.DB.WithContext(ctx)
	out := &DashboardSummary{}

	// room status distribution
	type statusRow struct {
		Status string
		Count  int64
	}
	var rows []statusRow
	if err := db.Model(&models.Room{}).
		Select("status, COUNT(*) AS count").
		Where("hotel_id = ?", hotelID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.Status] = r.Count
		out.TotalRooms += r.Count
	}
	for _, st := range models.RoomStatuses {
		rc := RoomStatusCount{Status: st, Count: counts[st]}
		if out.TotalRooms > 0 {
			rc.Percentage = round1(float64(rc.Count) * 100 / float64(out.TotalRooms))
		}
		out.RoomStatuses = append(out.RoomStatuses, rc)
	}
	if out.TotalRooms > 0 {
		out.OccupancyRate = round1(float64(counts[models.RoomOccupied]) * 100 / float64(out.TotalRooms))
	}

	// guests with a stay covering today
	today := truncateDay(at)
	if err := db.Model(&models.Booking{}).
		Where("hotel_id = ?", hotelID).
		Where("status IN ?", []string{models.BookingConfirmed, models.BookingCheckedIn}).
		Where("check_in_date <= ? AND check_out_date > ?", datatypes.Date(today), datatypes.Date(today)).
		Distinct("guest_id").
		Count(&out.ActiveGuests).Error; err != nil {
		return nil, err
	}

	// revenue windows from completed payments
	cal := now.With(at.UTC())
	var err error
	if out.Revenue.Today, err = s.revenueSince(db, hotelID, cal.BeginningOfDay()); err != nil {
		return nil, err
	}
	if out.Revenue.ThisWeek, err = s.revenueSince(db, hotelID, cal.BeginningOfWeek()); err != nil {
		return nil, err
	}
	if out.Revenue.ThisMonth, err = s.revenueSince(db, hotelID, cal.BeginningOfMonth()); err != nil {
		return nil, err
	}

	// lock health
	var locks []models.SmartLock
	if err := db.Select("id", "battery_level", "last_ping").Where("hotel_id = ?", hotelID).Find(&locks).Error; err != nil {
		return nil, err
	}
	for _, l := range locks {
		out.Locks.Total++
		if models.IsOnline(l.LastPing, at) {
			out.Locks.Online++
		} else {
			out.Locks.Offline++
		}
		if l.BatteryLevel < s.LowBatteryThreshold {
			out.Locks.LowBattery++
		}
	}
	return out, nil
}

func (s *AnalyticsService) revenueSince(db *gorm.DB, hotelID string, since time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("hotel_id = ? AND payment_status = ? AND paid_at >= ?", hotelID, models.PaymentCompleted, since).
		Scan(&total).Error
	return total, err
}
