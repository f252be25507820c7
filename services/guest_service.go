package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"checkinly-backend/events"
	"checkinly-backend/models"
	"checkinly-backend/utils"
)

type GuestService struct {
	DB          *gorm.DB
	Events      events.Publisher
	SearchCache *SearchService
	Now         func() time.Time
}

func NewGuestService(db *gorm.DB, pub events.Publisher) *GuestService {
	return &GuestService{DB: db, Events: pub, Now: time.Now}
}

type GuestInput struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone"`
	IDType      string  `json:"id_type"`
	IDNumber    string  `json:"id_number"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	DateOfBirth string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	RoomID      *string `json:"room_id"`
}

type GuestUpdateInput struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	IDType      *string `json:"id_type"`
	IDNumber    *string `json:"id_number"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// GuestResult carries the booking opened when a room was assigned on create.
type GuestResult struct {
	Guest   *models.Guest   `json:"guest"`
	Booking *models.Booking `json:"booking,omitempty"`
}

// ----------------------------------------------------
// List (newest first)
// ----------------------------------------------------
func (s *GuestService) List(ctx context.Context, hotelID, query string) ([]models.Guest, error) {
	q := s.DB.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if term := strings.TrimSpace(query); term != "" {
		like := likePattern(term)
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	var guests []models.Guest
	err := q.Order("created_at DESC").Find(&guests).Error
	return guests, err
}

func (s *GuestService) Get(ctx context.Context, hotelID, id string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).First(&guest).Error; err != nil {
		return nil, dbError(err)
	}
	return &guest, nil
}

func dateOfBirth(raw string) *datatypes.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

// ----------------------------------------------------
// Create; with room_id the guest is checked into that room for one night
// and the guest, booking and room status commit together.
// ----------------------------------------------------
func (s *GuestService) Create(ctx context.Context, hotelID string, in GuestInput) (*GuestResult, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	utils.Logger.Debugf("➡️ GuestService.Create %s %s <%s>", in.FirstName, in.LastName, utils.MaskEmail(in.Email))

	out := &GuestResult{}
	var room models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guest := &models.Guest{
			HotelID:     hotelID,
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			Email:       in.Email,
			Phone:       in.Phone,
			IDType:      in.IDType,
			IDNumber:    in.IDNumber,
			Address:     in.Address,
			City:        in.City,
			Country:     in.Country,
			DateOfBirth: dateOfBirth(in.DateOfBirth),
		}
		if err := tx.Create(guest).Error; err != nil {
			return dbError(err)
		}
		out.Guest = guest

		if in.RoomID == nil || strings.TrimSpace(*in.RoomID) == "" {
			return nil
		}

		if err := tx.Where("hotel_id = ? AND id = ?", hotelID, strings.TrimSpace(*in.RoomID)).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fieldError("room_id", "Room not found", ErrNotFound)
			}
			return err
		}
		if err := roomAvailable(&room); err != nil {
			return err
		}

		today := truncateDay(s.Now())
		booking := &models.Booking{
			HotelID:      hotelID,
			GuestID:      guest.ID,
			RoomID:       room.ID,
			CheckInDate:  datatypes.Date(today),
			CheckOutDate: datatypes.Date(today.AddDate(0, 0, 1)),
			TotalAmount:  room.PricePerNight,
			Status:       models.BookingCheckedIn,
		}
		if err := tx.Create(booking).Error; err != nil {
			return dbError(err)
		}
		if err := tx.Model(&room).Update("status", models.RoomOccupied).Error; err != nil {
			return err
		}
		out.Booking = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.SearchCache.Invalidate(ctx, hotelID)

	if out.Booking != nil {
		publish(ctx, s.Events, events.New(events.GuestCheckedIn, hotelID, map[string]string{
			"booking_id":  out.Booking.ID,
			"guest_name":  out.Guest.FullName(),
			"room_number": room.RoomNumber,
		}))
	}
	return out, nil
}

// ----------------------------------------------------
// Update (partial)
// ----------------------------------------------------
func (s *GuestService) Update(ctx context.Context, hotelID, id string, in GuestUpdateInput) (*models.Guest, error) {
	in.FirstName = trimPtr(in.FirstName)
	in.LastName = trimPtr(in.LastName)
	in.Email = trimPtr(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	guest, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("first_name", in.FirstName)
	set("last_name", in.LastName)
	set("email", in.Email)
	set("phone", in.Phone)
	set("id_type", in.IDType)
	set("id_number", in.IDNumber)
	set("address", in.Address)
	set("city", in.City)
	set("country", in.Country)
	if in.DateOfBirth != nil {
		updates["date_of_birth"] = dateOfBirth(*in.DateOfBirth)
	}
	if len(updates) == 0 {
		return guest, nil
	}

	if err := s.DB.WithContext(ctx).Model(guest).Updates(updates).Error; err != nil {
		return nil, dbError(err)
	}
	s.SearchCache.Invalidate(ctx, hotelID)
	return s.Get(ctx, hotelID, id)
}

func (s *GuestService) Delete(ctx context.Context, hotelID, id string) error {
	res := s.DB.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.Guest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.SearchCache.Invalidate(ctx, hotelID)
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
