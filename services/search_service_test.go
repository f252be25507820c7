package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countQueries(t *testing.T, db *gorm.DB) *atomic.Int32 {
	t.Helper()
	var n atomic.Int32
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("test:count_queries", func(*gorm.DB) {
		n.Add(1)
	}))
	return &n
}

func TestSearchBlankQueryTouchesNothing(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Quiet Inn")
	queries := countQueries(t, db)
	svc := NewSearchService(db, nil, 0)

	for _, q := range []string{"", "   ", "\t\n"} {
		results, err := svc.Search(context.Background(), hotelID, q)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
	assert.Zero(t, queries.Load())
}

func TestSearchGroupsRoomsGuestsBookings(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Search Inn")
	otherHotel, _ := newHotel(t, db, "Hidden Inn")

	suite, err := NewRoomService(db, nil).Create(context.Background(), hotelID, RoomInput{
		RoomNumber: "301", RoomType: "Confirmed Suite", Floor: 3, Capacity: 2, PricePerNight: 300,
	})
	require.NoError(t, err)
	guest := newGuest(t, db, hotelID, "Conrad", "Firmin")
	_, err = NewBookingService(db, nil).Create(context.Background(), hotelID, BookingInput{
		GuestID: guest.ID, RoomID: suite.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-11",
	})
	require.NoError(t, err)
	newGuest(t, db, otherHotel, "Confirmed", "Outsider")

	results, err := NewSearchService(db, nil, 0).Search(context.Background(), hotelID, "  CONF ")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, ResultRoom, results[0].Type)
	assert.Equal(t, "Room 301", results[0].Title)
	assert.Equal(t, "Confirmed Suite - available", results[0].Description)
	assert.Equal(t, "/rooms", results[0].URL)

	assert.Equal(t, ResultBooking, results[1].Type)
	assert.Equal(t, "Booking - Conrad Firmin", results[1].Title)
	assert.Equal(t, "Room 301 - confirmed", results[1].Description)
	assert.Equal(t, "/calendar", results[1].URL)

	results, err = NewSearchService(db, nil, 0).Search(context.Background(), hotelID, "firmin")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ResultGuest, results[0].Type)
	assert.Equal(t, "Conrad Firmin", results[0].Title)
	assert.Equal(t, "Conrad.Firmin@example.com", results[0].Description)
	assert.Equal(t, "/guests", results[0].URL)
}

func newCachedSearch(t *testing.T, db *gorm.DB) *SearchService {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSearchService(db, rdb, time.Minute)
}

func TestSearchCacheFollowsGuestWrites(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Cached Inn")
	search := newCachedSearch(t, db)
	guests := NewGuestService(db, nil)
	guests.SearchCache = search
	ctx := context.Background()

	zed, err := guests.Create(ctx, hotelID, GuestInput{FirstName: "Zed", LastName: "Quill", Email: "zed@example.com"})
	require.NoError(t, err)

	results, err := search.Search(ctx, hotelID, "quill")
	require.NoError(t, err)
	require.Len(t, results, 1)

	queries := countQueries(t, db)
	results, err = search.Search(ctx, hotelID, "QUILL")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, queries.Load(), "repeat search is served from cache")

	require.NoError(t, guests.Delete(ctx, hotelID, zed.Guest.ID))
	results, err = search.Search(ctx, hotelID, "quill")
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = guests.Create(ctx, hotelID, GuestInput{FirstName: "Amy", LastName: "Quill", Email: "amy@example.com"})
	require.NoError(t, err)
	results, err = search.Search(ctx, hotelID, "quill")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Amy Quill", results[0].Title)
}

func TestSearchCacheFollowsRoomStatus(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Status Inn")
	search := newCachedSearch(t, db)
	rooms := NewRoomService(db, nil)
	rooms.SearchCache = search
	ctx := context.Background()

	room, err := rooms.Create(ctx, hotelID, RoomInput{RoomNumber: "707", RoomType: "Suite", Floor: 7, Capacity: 2, PricePerNight: 200})
	require.NoError(t, err)
	results, err := search.Search(ctx, hotelID, "707")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Suite - available", results[0].Description)

	_, err = rooms.UpdateStatus(ctx, hotelID, room.ID, RoomStatusInput{Status: "maintenance"})
	require.NoError(t, err)
	results, err = search.Search(ctx, hotelID, "707")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Suite - maintenance", results[0].Description)
}

func TestSearchInvalidateWithoutCache(t *testing.T) {
	var none *SearchService
	assert.NotPanics(t, func() { none.Invalidate(context.Background(), "hotel") })
	assert.NotPanics(t, func() { NewSearchService(nil, nil, time.Minute).Invalidate(context.Background(), "hotel") })
}
