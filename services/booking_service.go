package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"checkinly-backend/events"
	"checkinly-backend/models"
	"checkinly-backend/utils"
)

type BookingService struct {
	DB          *gorm.DB
	Events      events.Publisher
	SearchCache *SearchService
}

func NewBookingService(db *gorm.DB, pub events.Publisher) *BookingService {
	return &BookingService{DB: db, Events: pub}
}

type BookingFilter struct {
	Status  string `form:"status"`
	GuestID string `form:"guest_id"`
	RoomID  string `form:"room_id"`
	// From/To select bookings overlapping [from, to) for the calendar view.
	From string `form:"from"`
	To   string `form:"to"`
}

type BookingInput struct {
	GuestID      string  `json:"guest_id" validate:"required"`
	RoomID       string  `json:"room_id" validate:"required"`
	CheckInDate  string  `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string  `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	TotalAmount  float64 `json:"total_amount" validate:"gte=0"`
	Status       string  `json:"status" validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
}

type BookingUpdateInput struct {
	RoomID       *string  `json:"room_id" validate:"omitempty,min=1"`
	CheckInDate  *string  `json:"check_in_date" validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string  `json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	TotalAmount  *float64 `json:"total_amount" validate:"omitempty,gte=0"`
	Status       *string  `json:"status" validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
}

// roomStatusFor is the room status a booking status implies, if any.
func roomStatusFor(bookingStatus string) (string, bool) {
	switch bookingStatus {
	case models.BookingCheckedIn:
		return models.RoomOccupied, true
	case models.BookingCheckedOut:
		return models.RoomCleaning, true
	}
	return "", false
}

// ----------------------------------------------------
// List (guest and room preloaded, newest first)
// ----------------------------------------------------
func (s *BookingService) List(ctx context.Context, hotelID string, f BookingFilter) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		Where("hotel_id = ?", hotelID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.GuestID != "" {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.RoomID != "" {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.From != "" {
		from, err := parseDate("from", f.From)
		if err != nil {
			return nil, err
		}
		q = q.Where("check_out_date > ?", datatypes.Date(from))
	}
	if f.To != "" {
		to, err := parseDate("to", f.To)
		if err != nil {
			return nil, err
		}
		q = q.Where("check_in_date < ?", datatypes.Date(to))
	}

	var bookings []models.Booking
	err := q.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) Get(ctx context.Context, hotelID, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		Where("hotel_id = ? AND id = ?", hotelID, id).
		First(&booking).Error
	if err != nil {
		return nil, dbError(err)
	}
	return &booking, nil
}

func stayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDate("check_in_date", checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := parseDate("check_out_date", checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, fieldError("check_out_date", "Check-out date must be after check-in date", nil)
	}
	return in, out, nil
}

// roomAvailable rejects checking a guest into a room that is not free.
func roomAvailable(room *models.Room) error {
	if room.Status != models.RoomAvailable {
		return fieldError("room_id", "Room "+room.RoomNumber+" is not available", ErrConflict)
	}
	return nil
}

// releaseRoom moves an occupied room to status; other statuses are left alone.
func releaseRoom(tx *gorm.DB, roomID, status string) error {
	return tx.Model(&models.Room{}).
		Where("id = ? AND status = ?", roomID, models.RoomOccupied).
		Update("status", status).Error
}

func loadRoom(tx *gorm.DB, hotelID, roomID string) (*models.Room, error) {
	var room models.Room
	if err := tx.Where("hotel_id = ? AND id = ?", hotelID, roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fieldError("room_id", "Room not found", ErrNotFound)
		}
		return nil, err
	}
	return &room, nil
}

// ----------------------------------------------------
// Create
// ----------------------------------------------------
func (s *BookingService) Create(ctx context.Context, hotelID string, in BookingInput) (*models.Booking, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	checkIn, checkOut, err := stayDates(in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.BookingConfirmed
	}

	var booking *models.Booking
	var room *models.Room
	var guest models.Guest
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ? AND id = ?", hotelID, in.GuestID).First(&guest).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fieldError("guest_id", "Guest not found", ErrNotFound)
			}
			return err
		}
		r, err := loadRoom(tx, hotelID, in.RoomID)
		if err != nil {
			return err
		}
		room = r
		if status == models.BookingCheckedIn {
			if err := roomAvailable(room); err != nil {
				return err
			}
		}

		booking = &models.Booking{
			HotelID:      hotelID,
			GuestID:      guest.ID,
			RoomID:       room.ID,
			CheckInDate:  datatypes.Date(checkIn),
			CheckOutDate: datatypes.Date(checkOut),
			TotalAmount:  in.TotalAmount,
			Status:       status,
		}
		if booking.TotalAmount == 0 {
			booking.TotalAmount = float64(booking.Nights()) * room.PricePerNight
		}
		if err := tx.Create(booking).Error; err != nil {
			return dbError(err)
		}
		if rs, ok := roomStatusFor(status); ok {
			return tx.Model(room).Update("status", rs).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("📅 booking %s created for room %s", booking.ID, room.RoomNumber)
	data := map[string]string{
		"booking_id":  booking.ID,
		"guest_name":  guest.FullName(),
		"room_number": room.RoomNumber,
		"check_in":    checkIn.Format(dateLayout),
	}
	s.SearchCache.Invalidate(ctx, hotelID)
	publish(ctx, s.Events, events.New(events.BookingCreated, hotelID, data))
	if status == models.BookingCheckedIn {
		publish(ctx, s.Events, events.New(events.GuestCheckedIn, hotelID, data))
	}
	return s.Get(ctx, hotelID, booking.ID)
}

// ----------------------------------------------------
// Update (partial). A checked-in booking holds its room occupied: moving
// it occupies the new room and sends the old one to cleaning, leaving
// checked_in frees the room. New dates without a total reprice the stay.
// ----------------------------------------------------
func (s *BookingService) Update(ctx context.Context, hotelID, id string, in BookingUpdateInput) (*models.Booking, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var checkedIn bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Where("hotel_id = ? AND id = ?", hotelID, id).First(&booking).Error; err != nil {
			return dbError(err)
		}

		prevIn := time.Time(booking.CheckInDate).Format(dateLayout)
		prevOut := time.Time(booking.CheckOutDate).Format(dateLayout)
		checkIn, checkOut := prevIn, prevOut
		if in.CheckInDate != nil {
			checkIn = *in.CheckInDate
		}
		if in.CheckOutDate != nil {
			checkOut = *in.CheckOutDate
		}
		start, end, err := stayDates(checkIn, checkOut)
		if err != nil {
			return err
		}
		datesChanged := start.Format(dateLayout) != prevIn || end.Format(dateLayout) != prevOut

		updates := map[string]interface{}{
			"check_in_date":  datatypes.Date(start),
			"check_out_date": datatypes.Date(end),
		}

		status := booking.Status
		if in.Status != nil {
			status = *in.Status
			updates["status"] = status
		}
		wasIn := booking.Status == models.BookingCheckedIn
		isIn := status == models.BookingCheckedIn
		checkedIn = isIn && !wasIn

		prevRoomID := booking.RoomID
		roomID := prevRoomID
		moved := in.RoomID != nil && *in.RoomID != prevRoomID
		if moved {
			roomID = *in.RoomID
		}
		var room *models.Room
		if moved || checkedIn || (datesChanged && in.TotalAmount == nil) {
			if room, err = loadRoom(tx, hotelID, roomID); err != nil {
				return err
			}
		}
		if moved {
			updates["room_id"] = room.ID
		}

		switch {
		case in.TotalAmount != nil:
			updates["total_amount"] = *in.TotalAmount
		case datesChanged:
			nights := int(end.Sub(start).Hours() / 24)
			updates["total_amount"] = float64(nights) * room.PricePerNight
		}

		if isIn && (moved || !wasIn) {
			if err := roomAvailable(room); err != nil {
				return err
			}
		}

		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return dbError(err)
		}

		switch {
		case wasIn && isIn && moved:
			if err := releaseRoom(tx, prevRoomID, models.RoomCleaning); err != nil {
				return err
			}
		case wasIn && !isIn:
			release := models.RoomAvailable
			if status == models.BookingCheckedOut {
				release = models.RoomCleaning
			}
			return releaseRoom(tx, prevRoomID, release)
		}
		if isIn && (moved || !wasIn) {
			return tx.Model(room).Update("status", models.RoomOccupied).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.SearchCache.Invalidate(ctx, hotelID)

	updated, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}
	if checkedIn {
		publish(ctx, s.Events, events.New(events.GuestCheckedIn, hotelID, bookingEventData(updated)))
	}
	return updated, nil
}

func (s *BookingService) CheckIn(ctx context.Context, hotelID, id string) (*models.Booking, error) {
	status := models.BookingCheckedIn
	return s.Update(ctx, hotelID, id, BookingUpdateInput{Status: &status})
}

func (s *BookingService) CheckOut(ctx context.Context, hotelID, id string) (*models.Booking, error) {
	booking, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingCheckedIn {
		return nil, fmt.Errorf("%w: booking is %s, not checked in", ErrConflict, booking.Status)
	}
	status := models.BookingCheckedOut
	return s.Update(ctx, hotelID, id, BookingUpdateInput{Status: &status})
}

// Delete removes the booking and frees the room of a checked-in stay.
func (s *BookingService) Delete(ctx context.Context, hotelID, id string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Where("hotel_id = ? AND id = ?", hotelID, id).First(&booking).Error; err != nil {
			return dbError(err)
		}
		if err := tx.Delete(&booking).Error; err != nil {
			return err
		}
		if booking.Status == models.BookingCheckedIn {
			return releaseRoom(tx, booking.RoomID, models.RoomAvailable)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.SearchCache.Invalidate(ctx, hotelID)
	return nil
}

func bookingEventData(b *models.Booking) map[string]string {
	data := map[string]string{
		"booking_id": b.ID,
		"status":     b.Status,
		"total":      strconv.FormatFloat(b.TotalAmount, 'f', 2, 64),
	}
	if b.Guest != nil {
		data["guest_name"] = strings.TrimSpace(b.Guest.FullName())
	}
	if b.Room != nil {
		data["room_number"] = b.Room.RoomNumber
	}
	return data
}
