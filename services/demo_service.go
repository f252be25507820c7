package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"checkinly-backend/models"
	"checkinly-backend/utils"
)

const (
	demoMaxFloor     = 20
	demoRoomsPerFlr  = 20
	defaultDemoRooms = 20
	defaultDemoGuest = 30
	defaultDemoLocks = 10
)

var (
	demoRoomTypes  = []string{"Single", "Double", "Suite"}
	demoBasePrice  = map[string]float64{"Single": 80, "Double": 120, "Suite": 220}
	demoAmenities  = []string{"WiFi", "TV", "AC"}
	demoFirstNames = []string{"Alex", "Jamie", "Taylor", "Morgan", "Jordan", "Casey", "Riley", "Avery", "Parker", "Quinn"}
	demoLastNames  = []string{"Smith", "Johnson", "Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor", "Anderson", "Thomas"}
	demoCountries  = []string{"USA", "Canada", "UK", "Germany", "France", "Spain", "Italy", "Australia", "India", "Japan"}
	demoIDTypes    = []string{"Passport", "National ID", "Driver License"}
	demoMethods    = []string{models.MethodCreditCard, models.MethodDebitCard, models.MethodCash, models.MethodBankTransfer}
	demoPayStatus  = []string{models.PaymentCompleted, models.PaymentPending, models.PaymentFailed}
)

// DemoService fills a hotel with plausible rooms, guests, bookings, payments
// and locks. A run commits entirely or not at all.
type DemoService struct {
	DB          *gorm.DB
	SearchCache *SearchService
	Now         func() time.Time
	NewRand     func() *rand.Rand
}

func NewDemoService(db *gorm.DB) *DemoService {
	return &DemoService{
		DB:  db,
		Now: time.Now,
		NewRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
		},
	}
}

type DemoInput struct {
	RoomsCount  *int `json:"rooms_count" validate:"omitempty,gte=0,lte=400"`
	GuestsCount *int `json:"guests_count" validate:"omitempty,gte=0,lte=1000"`
	LocksCount  *int `json:"locks_count" validate:"omitempty,gte=0,lte=400"`
}

type DemoResult struct {
	HotelID         string `json:"hotel_id"`
	RoomsInserted   int    `json:"rooms_inserted"`
	GuestsInserted  int    `json:"guests_inserted"`
	BookingsCreated int    `json:"bookings_created"`
	PaymentsCreated int    `json:"payments_created"`
	LocksCreated    int    `json:"locks_created"`
}

func orDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

// SequentialRoomNumbers yields up to count numbers "<floor><nn>" over floors
// 1..20 with 20 rooms each, skipping anything in existing. Chosen numbers are
// added to existing.
func SequentialRoomNumbers(existing map[string]bool, count int) []string {
	nums := make([]string, 0, count)
	for floor := 1; floor <= demoMaxFloor && len(nums) < count; floor++ {
		for n := 1; n <= demoRoomsPerFlr && len(nums) < count; n++ {
			num := fmt.Sprintf("%d%02d", floor, n)
			if existing[num] {
				continue
			}
			existing[num] = true
			nums = append(nums, num)
		}
	}
	return nums
}

// baseRoomNumber strips the per-hotel suffix from a seeded room number.
func baseRoomNumber(roomNumber string) string {
	return strings.SplitN(roomNumber, "-", 2)[0]
}

func floorOf(base string) int {
	n, err := strconv.Atoi(base)
	if err != nil || n < 100 {
		return 1
	}
	return n / 100
}

func hotelSuffix(hotelID string) string {
	if len(hotelID) > 4 {
		return hotelID[:4]
	}
	return hotelID
}

// ----------------------------------------------------
// Seed
// ----------------------------------------------------
func (s *DemoService) Seed(ctx context.Context, userID string, in DemoInput) (*DemoResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	roomsCount := orDefault(in.RoomsCount, defaultDemoRooms)
	guestsCount := orDefault(in.GuestsCount, defaultDemoGuest)
	locksCount := orDefault(in.LocksCount, defaultDemoLocks)

	rng := s.NewRand()
	now := s.Now().UTC()
	today := truncateDay(now)
	res := &DemoResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hotelID, err := ensureDemoHotel(tx, userID)
		if err != nil {
			return err
		}
		res.HotelID = hotelID
		suffix := "-" + hotelSuffix(hotelID)

		// 1) rooms
		var existing []models.Room
		if err := tx.Where("hotel_id = ?", hotelID).Order("room_number").Find(&existing).Error; err != nil {
			return err
		}
		taken := make(map[string]bool, len(existing))
		for _, r := range existing {
			taken[baseRoomNumber(r.RoomNumber)] = true
		}

		var newRooms []models.Room
		for _, base := range SequentialRoomNumbers(taken, roomsCount) {
			roomType := pick(rng, demoRoomTypes)
			newRooms = append(newRooms, models.Room{
				HotelID:       hotelID,
				RoomNumber:    base + suffix,
				RoomType:      roomType,
				Capacity:      1 + rng.IntN(4),
				Floor:         floorOf(base),
				PricePerNight: demoBasePrice[roomType] + float64(rng.IntN(60)),
				Status:        models.RoomAvailable,
				Amenities:     datatypes.JSONSlice[string](append([]string{}, demoAmenities[:1+rng.IntN(3)]...)),
			})
		}
		if len(newRooms) > 0 {
			if err := tx.Create(&newRooms).Error; err != nil {
				return fmt.Errorf("insert rooms: %w", err)
			}
		}
		res.RoomsInserted = len(newRooms)
		allRooms := append(existing, newRooms...)

		// 2) guests
		guests := make([]models.Guest, 0, guestsCount)
		for i := 0; i < guestsCount; i++ {
			first := pick(rng, demoFirstNames)
			last := pick(rng, demoLastNames)
			guests = append(guests, models.Guest{
				HotelID:   hotelID,
				FirstName: first,
				LastName:  last,
				Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), rng.IntN(1000)),
				Phone:     fmt.Sprintf("+1-555-%d", 1000000+rng.IntN(9000000)),
				IDType:    pick(rng, demoIDTypes),
				IDNumber:  strconv.Itoa(100000000 + rng.IntN(900000000)),
				Address:   fmt.Sprintf("%d Main St", 100+rng.IntN(900)),
				City:      "Metropolis",
				Country:   pick(rng, demoCountries),
			})
		}
		if len(guests) > 0 {
			if err := tx.Create(&guests).Error; err != nil {
				return fmt.Errorf("insert guests: %w", err)
			}
		}
		res.GuestsInserted = len(guests)

		// 3) bookings with one payment each
		if len(allRooms) > 0 && len(guests) > 0 {
			order := rng.Perm(len(allRooms))
			n := min(len(guests), len(allRooms))
			for i := 0; i < n; i++ {
				room := allRooms[order[i]]
				guest := guests[i%len(guests)]

				inOffset := rng.IntN(6) - 2
				outOffset := inOffset + 1 + rng.IntN(4)
				booking := models.Booking{
					HotelID:      hotelID,
					GuestID:      guest.ID,
					RoomID:       room.ID,
					CheckInDate:  datatypes.Date(today.AddDate(0, 0, inOffset)),
					CheckOutDate: datatypes.Date(today.AddDate(0, 0, outOffset)),
					Status:       models.BookingConfirmed,
				}
				booking.TotalAmount = float64((100 + rng.IntN(150)) * booking.Nights())
				if err := tx.Create(&booking).Error; err != nil {
					return fmt.Errorf("insert booking for room %s: %w", room.RoomNumber, err)
				}
				res.BookingsCreated++

				payment := models.Payment{
					HotelID:       hotelID,
					BookingID:     booking.ID,
					Amount:        booking.TotalAmount,
					PaymentMethod: pick(rng, demoMethods),
					PaymentStatus: pick(rng, demoPayStatus),
				}
				if payment.PaymentStatus == models.PaymentCompleted {
					payment.TransactionID = fmt.Sprintf("TXN-%d", 100000+rng.IntN(900000))
					payment.PaidAt = utils.PtrTime(now)
				}
				if err := tx.Create(&payment).Error; err != nil {
					return fmt.Errorf("insert payment for booking %s: %w", booking.ID, err)
				}
				res.PaymentsCreated++

				if inOffset <= 0 {
					if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", models.RoomOccupied).Error; err != nil {
						return fmt.Errorf("occupy room %s: %w", room.RoomNumber, err)
					}
				}
			}
		}

		// 4) smart locks on a random subset of rooms
		if len(allRooms) > 0 {
			var lockIDs []string
			if err := tx.Model(&models.SmartLock{}).Where("hotel_id = ?", hotelID).Pluck("lock_id", &lockIDs).Error; err != nil {
				return err
			}
			usedLockIDs := make(map[string]bool, len(lockIDs))
			for _, id := range lockIDs {
				usedLockIDs[id] = true
			}

			order := rng.Perm(len(allRooms))
			n := min(locksCount, len(allRooms))
			locks := make([]models.SmartLock, 0, n)
			for i := 0; i < n; i++ {
				lockID := ""
				for lockID == "" || usedLockIDs[lockID] {
					lockID = fmt.Sprintf("LOCK-%d-%s", 100000+rng.IntN(900000), hotelSuffix(hotelID))
				}
				usedLockIDs[lockID] = true

				status := models.LockUnlocked
				if rng.Float64() > 0.3 {
					status = models.LockLocked
				}
				locks = append(locks, models.SmartLock{
					HotelID:        hotelID,
					RoomID:         allRooms[order[i]].ID,
					LockID:         lockID,
					Status:         status,
					BatteryLevel:   30 + rng.IntN(70),
					SignalStrength: 1 + rng.IntN(5),
					LastPing:       utils.PtrTime(now),
					LastHeartbeat:  utils.PtrTime(now),
				})
			}
			if len(locks) > 0 {
				if err := tx.Create(&locks).Error; err != nil {
					return fmt.Errorf("insert smart locks: %w", err)
				}
			}
			res.LocksCreated = len(locks)
		}
		return nil
	})
	if err != nil {
		utils.Logger.WithError(err).Error("❌ demo seed rolled back")
		return nil, err
	}
	s.SearchCache.Invalidate(ctx, res.HotelID)

	utils.Logger.Infof("🌱 demo data for hotel %s: rooms=%d guests=%d bookings=%d payments=%d locks=%d",
		res.HotelID, res.RoomsInserted, res.GuestsInserted, res.BookingsCreated, res.PaymentsCreated, res.LocksCreated)
	return res, nil
}

// ensureDemoHotel returns the user's hotel, creating a demo hotel and admin
// profile when the user has none.
func ensureDemoHotel(tx *gorm.DB, userID string) (string, error) {
	var profile models.Profile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if err == nil && profile.HotelID != "" {
		return profile.HotelID, nil
	}
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hotel := &models.Hotel{
		Name:     "Demo Hotel",
		Address:  "123 Demo Street, Demo City, Demo State 12345",
		Phone:    "+1 (555) 123-4567",
		Email:    "demo@hotel.com",
		Timezone: "UTC-5 (Eastern)",
	}
	if err := tx.Create(hotel).Error; err != nil {
		return "", fmt.Errorf("create demo hotel: %w", err)
	}
	if found {
		err = tx.Model(&profile).Updates(map[string]interface{}{"hotel_id": hotel.ID, "role": models.RoleAdmin}).Error
		if err != nil {
			return "", fmt.Errorf("attach demo hotel: %w", err)
		}
		return hotel.ID, nil
	}
	profile = models.Profile{
		UserID:    userID,
		HotelID:   hotel.ID,
		FirstName: "Demo",
		LastName:  "User",
		Role:      models.RoleAdmin,
	}
	if err := tx.Create(&profile).Error; err != nil {
		return "", fmt.Errorf("create demo profile: %w", err)
	}
	return hotel.ID, nil
}
