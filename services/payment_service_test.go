package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"checkinly-backend/events"
	"checkinly-backend/models"
)

func newBooking(t *testing.T, db *gorm.DB, hotelID string) *models.Booking {
	t.Helper()
	room := newRoom(t, db, hotelID, "901", 100)
	guest := newGuest(t, db, hotelID, "Pay", "Er")
	b, err := NewBookingService(db, nil).Create(context.Background(), hotelID, BookingInput{
		GuestID: guest.ID, RoomID: room.ID, CheckInDate: "2024-06-10", CheckOutDate: "2024-06-12",
	})
	require.NoError(t, err)
	return b
}

func TestPaymentCreate(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Pay Inn")
	booking := newBooking(t, db, hotelID)
	rec := &events.Recorder{}
	svc := NewPaymentService(db, rec)
	svc.Now = func() time.Time { return fixedNow }

	pending, err := svc.Create(context.Background(), hotelID, PaymentInput{
		BookingID: booking.ID, Amount: 200, PaymentMethod: models.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, pending.PaymentStatus)
	assert.Nil(t, pending.PaidAt)
	assert.Empty(t, rec.Types())

	done, err := svc.Create(context.Background(), hotelID, PaymentInput{
		BookingID: booking.ID, Amount: 200, PaymentMethod: models.MethodCreditCard, PaymentStatus: models.PaymentCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, done.PaidAt)
	assert.True(t, done.PaidAt.Equal(fixedNow))
	assert.True(t, strings.HasPrefix(done.TransactionID, "TXN-"))
	assert.Equal(t, []string{events.PaymentCompleted}, rec.Types())
}

func TestPaymentCreateValidation(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Strict Pay Inn")
	svc := NewPaymentService(db, nil)

	_, err := svc.Create(context.Background(), hotelID, PaymentInput{Amount: -1, PaymentMethod: "cheque"})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "booking_id")
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "payment_method")

	_, err = svc.Create(context.Background(), hotelID, PaymentInput{BookingID: "missing", Amount: 10, PaymentMethod: models.MethodCash})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentUpdateToCompletedStampsPaidAt(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Settle Inn")
	booking := newBooking(t, db, hotelID)
	rec := &events.Recorder{}
	svc := NewPaymentService(db, rec)
	svc.Now = func() time.Time { return fixedNow }

	p, err := svc.Create(context.Background(), hotelID, PaymentInput{BookingID: booking.ID, Amount: 80, PaymentMethod: models.MethodDebitCard})
	require.NoError(t, err)

	status := models.PaymentCompleted
	p, err = svc.Update(context.Background(), hotelID, p.ID, PaymentUpdateInput{PaymentStatus: &status})
	require.NoError(t, err)
	require.NotNil(t, p.PaidAt)
	assert.NotEmpty(t, p.TransactionID)
	assert.Equal(t, []string{events.PaymentCompleted}, rec.Types())

	// unchanged status publishes nothing further
	_, err = svc.Update(context.Background(), hotelID, p.ID, PaymentUpdateInput{PaymentStatus: &status})
	require.NoError(t, err)
	assert.Len(t, rec.Types(), 1)
}

func TestPaymentSummaryAndList(t *testing.T) {
	db := newTestDB(t)
	hotelID, _ := newHotel(t, db, "Sum Inn")
	booking := newBooking(t, db, hotelID)
	svc := NewPaymentService(db, nil)

	for _, in := range []PaymentInput{
		{BookingID: booking.ID, Amount: 100, PaymentMethod: models.MethodCash, PaymentStatus: models.PaymentCompleted},
		{BookingID: booking.ID, Amount: 50, PaymentMethod: models.MethodCreditCard, PaymentStatus: models.PaymentCompleted},
		{BookingID: booking.ID, Amount: 30, PaymentMethod: models.MethodCash, PaymentStatus: models.PaymentPending},
		{BookingID: booking.ID, Amount: 20, PaymentMethod: models.MethodCash, PaymentStatus: models.PaymentFailed},
	} {
		_, err := svc.Create(context.Background(), hotelID, in)
		require.NoError(t, err)
	}

	sum, err := svc.Summary(context.Background(), hotelID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, sum.TotalRevenue)
	assert.Equal(t, 30.0, sum.Pending)
	assert.Equal(t, 20.0, sum.Failed)
	assert.Equal(t, int64(4), sum.Count)
	assert.Equal(t, 100.0, sum.ByMethod[models.MethodCash])

	cash, err := svc.List(context.Background(), hotelID, PaymentFilter{Method: models.MethodCash})
	require.NoError(t, err)
	assert.Len(t, cash, 3)
	require.NotNil(t, cash[0].Booking)
	require.NotNil(t, cash[0].Booking.Guest)

	require.NoError(t, svc.Delete(context.Background(), hotelID, cash[0].ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), hotelID, cash[0].ID), ErrNotFound)
}
