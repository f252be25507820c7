package services

import (
	"context"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"checkinly-backend/events"
	"checkinly-backend/models"
	"checkinly-backend/utils"
)

type RoomService struct {
	DB          *gorm.DB
	Events      events.Publisher
	SearchCache *SearchService
}

func NewRoomService(db *gorm.DB, pub events.Publisher) *RoomService {
	return &RoomService{DB: db, Events: pub}
}

type RoomFilter struct {
	Status   string `form:"status"`
	RoomType string `form:"room_type"`
	Floor    *int   `form:"floor"`
	Query    string `form:"q"`
}

type RoomInput struct {
	RoomNumber    string   `json:"room_number" validate:"required"`
	RoomType      string   `json:"room_type" validate:"required"`
	Floor         int      `json:"floor" validate:"gte=1"`
	Capacity      int      `json:"capacity" validate:"gte=1"`
	PricePerNight float64  `json:"price_per_night" validate:"gt=0"`
	Status        string   `json:"status" validate:"omitempty,oneof=available occupied maintenance cleaning"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
}

type RoomUpdateInput struct {
	RoomNumber    *string   `json:"room_number" validate:"omitempty,min=1"`
	RoomType      *string   `json:"room_type" validate:"omitempty,min=1"`
	Floor         *int      `json:"floor" validate:"omitempty,gte=1"`
	Capacity      *int      `json:"capacity" validate:"omitempty,gte=1"`
	PricePerNight *float64  `json:"price_per_night" validate:"omitempty,gt=0"`
	Status        *string   `json:"status" validate:"omitempty,oneof=available occupied maintenance cleaning"`
	Amenities     *[]string `json:"amenities"`
	Description   *string   `json:"description"`
}

// ----------------------------------------------------
// List (rooms ordered by number)
// ----------------------------------------------------
func (s *RoomService) List(ctx context.Context, hotelID string, f RoomFilter) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RoomType != "" {
		q = q.Where("LOWER(room_type) = ?", strings.ToLower(f.RoomType))
	}
	if f.Floor != nil {
		q = q.Where("floor = ?", *f.Floor)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := likePattern(term)
		q = q.Where("LOWER(room_number) LIKE ? OR LOWER(room_type) LIKE ?", like, like)
	}

	var rooms []models.Room
	err := q.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) Get(ctx context.Context, hotelID, id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).First(&room).Error; err != nil {
		return nil, dbError(err)
	}
	return &room, nil
}

// roomNumberTaken ignores soft-deleted rooms and, when set, the room being edited.
func roomNumberTaken(tx *gorm.DB, hotelID, number, excludeID string) (bool, error) {
	q := tx.Model(&models.Room{}).Where("hotel_id = ? AND room_number = ?", hotelID, number)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// lockHotelRooms holds the hotel row for the rest of tx so room-number checks
// and writes for one hotel run one at a time.
func lockHotelRooms(tx *gorm.DB, hotelID string) error {
	var hotel models.Hotel
	return dbError(tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", hotelID).
		First(&hotel).Error)
}

func duplicateRoomError(number string) error {
	return fieldError("room_number", "Room number "+number+" already exists", ErrDuplicateRoom)
}

// ----------------------------------------------------
// Create
// ----------------------------------------------------
func (s *RoomService) Create(ctx context.Context, hotelID string, in RoomInput) (*models.Room, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	in.RoomType = strings.TrimSpace(in.RoomType)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.RoomAvailable
	}
	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	room := &models.Room{
		HotelID:       hotelID,
		RoomNumber:    in.RoomNumber,
		RoomType:      in.RoomType,
		Floor:         in.Floor,
		Capacity:      in.Capacity,
		PricePerNight: in.PricePerNight,
		Status:        status,
		Amenities:     datatypes.JSONSlice[string](amenities),
		Description:   in.Description,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockHotelRooms(tx, hotelID); err != nil {
			return err
		}
		taken, err := roomNumberTaken(tx, hotelID, in.RoomNumber, "")
		if err != nil {
			return err
		}
		if taken {
			return duplicateRoomError(in.RoomNumber)
		}
		return dbError(tx.Create(room).Error)
	})
	if err != nil {
		return nil, err
	}

	s.SearchCache.Invalidate(ctx, hotelID)
	utils.Logger.Infof("✅ room %s created in hotel %s", room.RoomNumber, hotelID)
	return room, nil
}

// ----------------------------------------------------
// Update (partial)
// ----------------------------------------------------
func (s *RoomService) Update(ctx context.Context, hotelID, id string, in RoomUpdateInput) (*models.Room, error) {
	in.RoomNumber = trimPtr(in.RoomNumber)
	in.RoomType = trimPtr(in.RoomType)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	room, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}
	prevStatus := room.Status

	updates := map[string]interface{}{}
	renamed := in.RoomNumber != nil && *in.RoomNumber != room.RoomNumber
	if renamed {
		updates["room_number"] = *in.RoomNumber
	}
	if in.RoomType != nil {
		updates["room_type"] = *in.RoomType
	}
	if in.Floor != nil {
		updates["floor"] = *in.Floor
	}
	if in.Capacity != nil {
		updates["capacity"] = *in.Capacity
	}
	if in.PricePerNight != nil {
		updates["price_per_night"] = *in.PricePerNight
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Amenities != nil {
		updates["amenities"] = datatypes.JSONSlice[string](*in.Amenities)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) == 0 {
		return room, nil
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if renamed {
			if err := lockHotelRooms(tx, hotelID); err != nil {
				return err
			}
			taken, err := roomNumberTaken(tx, hotelID, *in.RoomNumber, id)
			if err != nil {
				return err
			}
			if taken {
				return duplicateRoomError(*in.RoomNumber)
			}
		}
		return dbError(tx.Model(room).Updates(updates).Error)
	})
	if err != nil {
		return nil, err
	}
	s.SearchCache.Invalidate(ctx, hotelID)

	updated, err := s.Get(ctx, hotelID, id)
	if err != nil {
		return nil, err
	}
	if updated.Status == models.RoomMaintenance && prevStatus != models.RoomMaintenance {
		publish(ctx, s.Events, events.New(events.RoomMaintenance, hotelID, map[string]string{
			"room_id":     updated.ID,
			"room_number": updated.RoomNumber,
		}))
	}
	return updated, nil
}

type RoomStatusInput struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance cleaning"`
}

func (s *RoomService) UpdateStatus(ctx context.Context, hotelID, id string, in RoomStatusInput) (*models.Room, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.Update(ctx, hotelID, id, RoomUpdateInput{Status: &in.Status})
}

func (s *RoomService) Delete(ctx context.Context, hotelID, id string) error {
	res := s.DB.WithContext(ctx).Where("hotel_id = ? AND id = ?", hotelID, id).Delete(&models.Room{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.SearchCache.Invalidate(ctx, hotelID)
	return nil
}

// likePattern lowercases a term and wraps it for a contains match.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
