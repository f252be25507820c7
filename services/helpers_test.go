package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"checkinly-backend/models"
	"checkinly-backend/testutil"
)

var fixedNow = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	return testutil.NewDB(t)
}

// newHotel creates a user with a fully set-up hotel and returns both ids.
func newHotel(t *testing.T, db *gorm.DB, name string) (hotelID, userID string) {
	t.Helper()
	user := &models.User{Email: uuid.NewString() + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	hc, err := NewHotelService(db).Setup(context.Background(), user.ID, HotelSetupInput{HotelName: name})
	require.NoError(t, err)
	return hc.Hotel.ID, user.ID
}

func newRoom(t *testing.T, db *gorm.DB, hotelID, number string, price float64) *models.Room {
	t.Helper()
	room, err := NewRoomService(db, nil).Create(context.Background(), hotelID, RoomInput{
		RoomNumber:    number,
		RoomType:      "Double",
		Floor:         1,
		Capacity:      2,
		PricePerNight: price,
	})
	require.NoError(t, err)
	return room
}

func newGuest(t *testing.T, db *gorm.DB, hotelID, first, last string) *models.Guest {
	t.Helper()
	res, err := NewGuestService(db, nil).Create(context.Background(), hotelID, GuestInput{
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@example.com",
	})
	require.NoError(t, err)
	return res.Guest
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}

func count(t *testing.T, db *gorm.DB, model interface{}, where ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
