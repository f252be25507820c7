package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"checkinly-backend/events"
	"checkinly-backend/models"
)

func TestBookingCreateComputesTotal(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Book Inn")
	room := newRoom(t, db, hotelID, "101", 120)
	guest := newGuest(t, db, hotelID, "Ada", "Lovelace")
	rec := &events.Recorder{}

	b, err := NewBookingService(db, rec).Create(context.Background(), hotelID, BookingInput{
		GuestID: guest.ID, RoomID: room.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-13",
	})
	require.NoError(t, err)
	assert.Equal(t, 360.0, b.TotalAmount)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	require.NotNil(t, b.Guest)
	require.NotNil(t, b.Room)
	assert.Equal(t, "101", b.Room.RoomNumber)
	assert.Equal(t, []string{events.BookingCreated}, rec.Types())
	assert.Equal(t, "Ada Lovelace", rec.Events[0].Data["guest_name"])
}

func TestBookingCreateValidation(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Strict Inn")
	otherHotel, _ := newHotel(t, db, "Other Inn")
	room := newRoom(t, db, hotelID, "101", 120)
	guest := newGuest(t, db, hotelID, "Ada", "Lovelace")
	foreignGuest := newGuest(t, db, otherHotel, "Eve", "Foreign")
	svc := NewBookingService(db, nil)

	_, err := svc.Create(context.Background(), hotelID, BookingInput{})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "guest_id")
	assert.Contains(t, fields, "check_in_date")

	_, err = svc.Create(context.Background(), hotelID, BookingInput{
		GuestID: guest.ID, RoomID: room.ID, CheckInDate: "2024-06-13", CheckOutDate: "2024-06-13",
	})
	assert.Contains(t, fieldsOf(t, err), "check_out_date")

	_, err = svc.Create(context.Background(), hotelID, BookingInput{
		GuestID: foreignGuest.ID, RoomID: room.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-11",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, count(t, db, &models.Booking{}))
}

func TestBookingCheckInAndOutDriveRoomStatus(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Flow Inn")
	room := newRoom(t, db, hotelID, "101", 100)
	guest := newGuest(t, db, hotelID, "Ada", "Lovelace")
	rec := &events.Recorder{}
	svc := NewBookingService(db, rec)

	b, err := svc.Create(context.Background(), hotelID, BookingInput{
		GuestID: guest.ID, RoomID: room.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-12", TotalAmount: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, b.TotalAmount)

	_, err = svc.CheckOut(context.Background(), hotelID, b.ID)
	assert.ErrorIs(t, err, ErrConflict)

	b, err = svc.CheckIn(context.Background(), hotelID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, b.Status)
	assert.Equal(t, models.RoomOccupied, b.Room.Status)

	b, err = svc.CheckOut(context.Background(), hotelID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, b.Status)
	assert.Equal(t, models.RoomCleaning, b.Room.Status)

	assert.Equal(t, []string{events.BookingCreated, events.GuestCheckedIn}, rec.Types())
}

func TestBookingListFilters(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Calendar Inn")
	room := newRoom(t, db, hotelID, "101", 100)
	guest := newGuest(t, db, hotelID, "Ada", "Lovelace")
	svc := NewBookingService(db, nil)

	for _, d := range [][2]string{{"2024-06-01", "2024-06-03"}, {"2024-06-10", "2024-06-12"}} {
		_, err := svc.Create(context.Background(), hotelID, BookingInput{
			GuestID: guest.ID, RoomID: room.ID, CheckInDate: d[0], CheckOutDate: d[1],
		})
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), hotelID, BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	june := "2024-06-09"
	window, err := svc.List(context.Background(), hotelID, BookingFilter{From: june, To: "2024-06-30"})
	require.NoError(t, err)
	require.Len(t, window, 1)

	_, err = svc.List(context.Background(), hotelID, BookingFilter{From: "June"})
	assert.Contains(t, fieldsOf(t, err), "from")

	require.NoError(t, svc.Delete(context.Background(), hotelID, window[0].ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), hotelID, window[0].ID), ErrNotFound)
}

func roomStatus(t *testing.T, db *gorm.DB, roomID string) string {
	t.Helper()
	var room models.Room
	require.NoError(t, db.First(&room, "id = ?", roomID).Error)
	return room.Status
}

func TestBookingMoveCancelAndDeleteReleaseRooms(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Shuffle Inn")
	r101 := newRoom(t, db, hotelID, "101", 100)
	r102 := newRoom(t, db, hotelID, "102", 100)
	guest := newGuest(t, db, hotelID, "Ada", "Lovelace")
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	b, err := svc.Create(ctx, hotelID, BookingInput{
		GuestID: guest.ID, RoomID: r101.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-12", Status: models.BookingCheckedIn,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, roomStatus(t, db, r101.ID))

	b, err = svc.Update(ctx, hotelID, b.ID, BookingUpdateInput{RoomID: &r102.ID})
	require.NoError(t, err)
	assert.Equal(t, r102.ID, b.RoomID)
	assert.Equal(t, models.RoomCleaning, roomStatus(t, db, r101.ID))
	assert.Equal(t, models.RoomOccupied, roomStatus(t, db, r102.ID))

	cancelled := models.BookingCancelled
	_, err = svc.Update(ctx, hotelID, b.ID, BookingUpdateInput{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, roomStatus(t, db, r102.ID))
	assert.Equal(t, models.RoomCleaning, roomStatus(t, db, r101.ID))

	b, err = svc.Create(ctx, hotelID, BookingInput{
		GuestID: guest.ID, RoomID: r102.ID, CheckInDate: "2024-06-12", CheckOutDate: "2024-06-13", Status: models.BookingCheckedIn,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, hotelID, b.ID))
	assert.Equal(t, models.RoomAvailable, roomStatus(t, db, r102.ID))
}

func TestBookingCheckInNeedsAvailableRoom(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Full Inn")
	room := newRoom(t, db, hotelID, "101", 100)
	ada := newGuest(t, db, hotelID, "Ada", "Lovelace")
	bob := newGuest(t, db, hotelID, "Bob", "Babbage")
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, hotelID, BookingInput{
		GuestID: ada.ID, RoomID: room.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-12", Status: models.BookingCheckedIn,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, hotelID, BookingInput{
		GuestID: bob.ID, RoomID: room.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-11", Status: models.BookingCheckedIn,
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, fieldsOf(t, err), "room_id")
	assert.EqualValues(t, 1, count(t, db, &models.Booking{}))

	// a future reservation is fine, checking it in is not
	later, err := svc.Create(ctx, hotelID, BookingInput{
		GuestID: bob.ID, RoomID: room.ID, CheckInDate: "2024-06-20", CheckOutDate: "2024-06-21",
	})
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, hotelID, later.ID)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.Get(ctx, hotelID, later.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
	assert.Equal(t, models.RoomOccupied, roomStatus(t, db, room.ID))
}

func TestBookingNewDatesReprice(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Price Inn")
	room := newRoom(t, db, hotelID, "101", 100)
	guest := newGuest(t, db, hotelID, "Ada", "Lovelace")
	svc := NewBookingService(db, nil)
	ctx := context.Background()

	b, err := svc.Create(ctx, hotelID, BookingInput{
		GuestID: guest.ID, RoomID: room.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-12",
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, b.TotalAmount)

	out := "2024-06-15"
	b, err = svc.Update(ctx, hotelID, b.ID, BookingUpdateInput{CheckOutDate: &out})
	require.NoError(t, err)
	assert.Equal(t, 500.0, b.TotalAmount)

	in, total := "2024-06-11", 350.0
	b, err = svc.Update(ctx, hotelID, b.ID, BookingUpdateInput{CheckInDate: &in, TotalAmount: &total})
	require.NoError(t, err)
	assert.Equal(t, 350.0, b.TotalAmount)

	b, err = svc.CheckIn(ctx, hotelID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, b.TotalAmount)
}
