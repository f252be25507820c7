package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"checkinly-backend/models"
	"checkinly-backend/utils"
)

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

// HotelContext is the caller's hotel together with their profile in it.
type HotelContext struct {
	Hotel   *models.Hotel   `json:"hotel"`
	Profile *models.Profile `json:"profile"`
}

type HotelSetupInput struct {
	HotelName string `json:"hotel_name" validate:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Timezone  string `json:"timezone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type HotelUpdateInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Timezone *string `json:"timezone"`
}

// ----------------------------------------------------
// Setup creates the hotel and the caller's admin profile atomically.
// ----------------------------------------------------
func (s *HotelService) Setup(ctx context.Context, userID string, in HotelSetupInput) (*HotelContext, error) {
	in.HotelName = strings.TrimSpace(in.HotelName)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	out := &HotelContext{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrHotelExists
		}

		hotel := &models.Hotel{
			Name:     in.HotelName,
			Address:  in.Address,
			Phone:    in.Phone,
			Email:    in.Email,
			Timezone: in.Timezone,
		}
		if err := tx.Create(hotel).Error; err != nil {
			return err
		}

		profile := &models.Profile{
			UserID:    userID,
			HotelID:   hotel.ID,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Role:      models.RoleAdmin,
		}
		if err := tx.Create(profile).Error; err != nil {
			return dbError(err)
		}

		out.Hotel, out.Profile = hotel, profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("🏨 hotel %s set up by user %s", out.Hotel.ID, userID)
	return out, nil
}

// GetForUser returns ErrNoHotel when the user has not completed setup.
func (s *HotelService) GetForUser(ctx context.Context, userID string) (*HotelContext, error) {
	var profile models.Profile
	err := s.DB.WithContext(ctx).Preload("Hotel").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoHotel
	}
	if err != nil {
		return nil, err
	}
	if profile.Hotel == nil {
		return nil, ErrNoHotel
	}
	hotel := profile.Hotel
	profile.Hotel = nil
	return &HotelContext{Hotel: hotel, Profile: &profile}, nil
}

func (s *HotelService) Get(ctx context.Context, hotelID string) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.WithContext(ctx).First(&hotel, "id = ?", hotelID).Error; err != nil {
		return nil, dbError(err)
	}
	return &hotel, nil
}

func (s *HotelService) Update(ctx context.Context, hotelID string, in HotelUpdateInput) (*models.Hotel, error) {
	in.Name = trimPtr(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Timezone != nil {
		updates["timezone"] = *in.Timezone
	}

	hotel, err := s.Get(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return hotel, nil
	}
	if err := s.DB.WithContext(ctx).Model(hotel).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, hotelID)
}

// ----------------------------------------------------
// Members
// ----------------------------------------------------
func (s *HotelService) ListMembers(ctx context.Context, hotelID string) ([]models.Profile, error) {
	var members []models.Profile
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("hotel_id = ?", hotelID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

type MemberInput struct {
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=admin manager receptionist housekeeping"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AddMember attaches a registered user to the hotel. A user belongs to at
// most one hotel.
func (s *HotelService) AddMember(ctx context.Context, hotelID string, in MemberInput) (*models.Profile, error) {
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var profile models.Profile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("email = ?", in.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fieldError("email", "No account is registered with this email", ErrNotFound)
			}
			return err
		}

		err := tx.Where("user_id = ?", user.ID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.Profile{
				UserID:    user.ID,
				HotelID:   hotelID,
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Role:      in.Role,
			}
			return dbError(tx.Create(&profile).Error)
		case err != nil:
			return err
		case profile.HotelID != "":
			return fieldError("email", "This user already belongs to a hotel", ErrConflict)
		}
		return tx.Model(&profile).Updates(map[string]interface{}{
			"hotel_id":   hotelID,
			"role":       in.Role,
			"first_name": in.FirstName,
			"last_name":  in.LastName,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("👥 %s joined hotel %s as %s", utils.MaskEmail(in.Email), hotelID, in.Role)
	return &profile, nil
}

type RoleInput struct {
	Role string `json:"role" validate:"required,oneof=admin manager receptionist housekeeping"`
}

func (s *HotelService) UpdateMemberRole(ctx context.Context, hotelID, profileID string, in RoleInput) (*models.Profile, error) {
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var profile models.Profile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ? AND id = ?", hotelID, profileID).First(&profile).Error; err != nil {
			return dbError(err)
		}
		if profile.Role == models.RoleAdmin && in.Role != models.RoleAdmin {
			var admins int64
			if err := tx.Model(&models.Profile{}).
				Where("hotel_id = ? AND role = ?", hotelID, models.RoleAdmin).
				Count(&admins).Error; err != nil {
				return err
			}
			if admins <= 1 {
				return fieldError("role", "A hotel needs at least one admin", ErrConflict)
			}
		}
		return tx.Model(&profile).Update("role", in.Role).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
