package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkinly-backend/models"
	"checkinly-backend/utils"
)

func TestAnalyticsSummary(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Metrics Inn")
	ctx := context.Background()
	bookings := NewBookingService(db, nil)

	r101 := newRoom(t, db, hotelID, "101", 100)
	r102 := newRoom(t, db, hotelID, "102", 100)
	r103 := newRoom(t, db, hotelID, "103", 100)
	r104 := newRoom(t, db, hotelID, "104", 100)
	require.NoError(t, db.Model(r103).Update("status", models.RoomMaintenance).Error)

	ann := newGuest(t, db, hotelID, "Ann", "Stay")
	bob := newGuest(t, db, hotelID, "Bob", "Soon")
	cal := newGuest(t, db, hotelID, "Cal", "Gone")

	mk := func(guestID, roomID, in, out, status string) *models.Booking {
		b, err := bookings.Create(ctx, hotelID, BookingInput{
			GuestID: guestID, RoomID: roomID, CheckInDate: in, CheckOutDate: out, Status: status,
		})
		require.NoError(t, err)
		return b
	}
	current := mk(ann.ID, r101.ID, "2024-06-11", "2024-06-13", models.BookingCheckedIn)
	mk(bob.ID, r102.ID, "2024-06-12", "2024-06-14", models.BookingConfirmed)
	mk(bob.ID, r104.ID, "2024-06-10", "2024-06-11", models.BookingConfirmed)
	mk(cal.ID, r104.ID, "2024-06-12", "2024-06-13", models.BookingCancelled)

	pay := func(amount float64, status string, paidAt *time.Time) {
		require.NoError(t, db.Create(&models.Payment{
			HotelID: hotelID, BookingID: current.ID, Amount: amount,
			PaymentMethod: models.MethodCash, PaymentStatus: status, PaidAt: paidAt,
		}).Error)
	}
	pay(50, models.PaymentCompleted, utils.PtrTime(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)))
	pay(30, models.PaymentCompleted, utils.PtrTime(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)))
	pay(20, models.PaymentCompleted, utils.PtrTime(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	pay(1000, models.PaymentCompleted, utils.PtrTime(time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)))
	pay(500, models.PaymentPending, nil)

	require.NoError(t, db.Create(&[]models.SmartLock{
		{HotelID: hotelID, RoomID: r101.ID, LockID: "L1", Status: models.LockLocked, BatteryLevel: 80, LastPing: utils.PtrTime(fixedNow.Add(-time.Minute))},
		{HotelID: hotelID, RoomID: r102.ID, LockID: "L2", Status: models.LockLocked, BatteryLevel: 10},
	}).Error)

	sum, err := NewAnalyticsService(db, 20).Summary(ctx, hotelID, fixedNow)
	require.NoError(t, err)

	assert.EqualValues(t, 4, sum.TotalRooms)
	byStatus := map[string]RoomStatusCount{}
	for _, rs := range sum.RoomStatuses {
		byStatus[rs.Status] = rs
	}
	assert.Len(t, sum.RoomStatuses, len(models.RoomStatuses))
	assert.Equal(t, 50.0, byStatus[models.RoomAvailable].Percentage)
	assert.Equal(t, 25.0, byStatus[models.RoomOccupied].Percentage)
	assert.Equal(t, 25.0, byStatus[models.RoomMaintenance].Percentage)
	assert.Zero(t, byStatus[models.RoomCleaning].Count)
	assert.Equal(t, 25.0, sum.OccupancyRate)

	assert.EqualValues(t, 2, sum.ActiveGuests)

	assert.Equal(t, 50.0, sum.Revenue.Today)
	assert.Equal(t, 80.0, sum.Revenue.ThisWeek)
	assert.Equal(t, 100.0, sum.Revenue.ThisMonth)

	assert.Equal(t, LockHealth{Total: 2, Online: 1, Offline: 1, LowBattery: 1}, sum.Locks)
}

func TestAnalyticsEmptyHotel(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Empty Inn")

	sum, err := NewAnalyticsService(db, 20).Summary(context.Background(), hotelID, fixedNow)
	require.NoError(t, err)
	assert.Zero(t, sum.TotalRooms)
	assert.Zero(t, sum.OccupancyRate)
	assert.Len(t, sum.RoomStatuses, 4)
	assert.Zero(t, sum.Revenue.ThisMonth)
}
