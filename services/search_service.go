package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"checkinly-backend/models"
	"checkinly-backend/utils"
)

const (
	ResultRoom    = "room"
	ResultGuest   = "guest"
	ResultBooking = "booking"
)

type SearchResult struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// SearchService runs the header search across rooms, guests and bookings.
// Cache may be nil.
type SearchService struct {
	DB       *gorm.DB
	Cache    *redis.Client
	CacheTTL time.Duration
}

func NewSearchService(db *gorm.DB, cache *redis.Client, ttl time.Duration) *SearchService {
	return &SearchService{DB: db, Cache: cache, CacheTTL: ttl}
}

func searchVersionKey(hotelID string) string {
	return "search:ver:" + hotelID
}

// searchCacheKey ties a cached result to the hotel's data generation.
func searchCacheKey(hotelID string, version int64, term string) string {
	sum := sha1.Sum([]byte(hotelID + "|" + strconv.FormatInt(version, 10) + "|" + term))
	return "search:" + hex.EncodeToString(sum[:])
}

func (s *SearchService) cacheEnabled() bool {
	return s != nil && s.Cache != nil && s.CacheTTL > 0
}

// Invalidate starts a new cache generation for hotelID. Rooms, guests and
// bookings call it after every committed write. Nil-safe.
func (s *SearchService) Invalidate(ctx context.Context, hotelID string) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.Cache.Incr(ctx, searchVersionKey(hotelID)).Err(); err != nil {
		utils.Logger.WithError(err).Warnf("search cache invalidation failed for hotel %s", hotelID)
	}
}

func (s *SearchService) version(ctx context.Context, hotelID string) int64 {
	v, err := s.Cache.Get(ctx, searchVersionKey(hotelID)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.Logger.WithError(err).Debug("search cache version read failed")
		}
		return 0
	}
	return v
}

// Search returns rooms, then guests, then bookings matching q. A blank q
// yields an empty result without touching the database.
func (s *SearchService) Search(ctx context.Context, hotelID, q string) ([]SearchResult, error) {
	term := strings.ToLower(strings.TrimSpace(q))
	if term == "" {
		return []SearchResult{}, nil
	}

	var key string
	if s.cacheEnabled() {
		key = searchCacheKey(hotelID, s.version(ctx, hotelID), term)
		if cached, ok := s.fromCache(ctx, key); ok {
			return cached, nil
		}
	}

	like := likePattern(term)
	db := s.DB.WithContext(ctx)

	var rooms []models.Room
	if err := db.Where("hotel_id = ?", hotelID).
		Where("LOWER(room_number) LIKE ? OR LOWER(room_type) LIKE ?", like, like).
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("search rooms: %w", err)
	}

	var guests []models.Guest
	if err := db.Where("hotel_id = ?", hotelID).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like).
		Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("search guests: %w", err)
	}

	var bookings []models.Booking
	if err := db.Preload("Guest").Preload("Room").
		Where("hotel_id = ?", hotelID).
		Where("LOWER(status) LIKE ?", like).
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}

	results := make([]SearchResult, 0, len(rooms)+len(guests)+len(bookings))
	for _, r := range rooms {
		results = append(results, SearchResult{
			Type:        ResultRoom,
			ID:          r.ID,
			Title:       "Room " + r.RoomNumber,
			Description: r.RoomType + " - " + r.Status,
			URL:         "/rooms",
		})
	}
	for _, g := range guests {
		results = append(results, SearchResult{
			Type:        ResultGuest,
			ID:          g.ID,
			Title:       g.FirstName + " " + g.LastName,
			Description: g.Email,
			URL:         "/guests",
		})
	}
	for _, b := range bookings {
		var first, last, number string
		if b.Guest != nil {
			first, last = b.Guest.FirstName, b.Guest.LastName
		}
		if b.Room != nil {
			number = b.Room.RoomNumber
		}
		results = append(results, SearchResult{
			Type:        ResultBooking,
			ID:          b.ID,
			Title:       "Booking - " + first + " " + last,
			Description: "Room " + number + " - " + b.Status,
			URL:         "/calendar",
		})
	}

	if key != "" {
		s.toCache(ctx, key, results)
	}
	return results, nil
}

func (s *SearchService) fromCache(ctx context.Context, key string) ([]SearchResult, bool) {
	raw, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			utils.Logger.WithError(err).Debug("search cache read failed")
		}
		return nil, false
	}
	var out []SearchResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *SearchService) toCache(ctx context.Context, key string, results []SearchResult) {
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, raw, s.CacheTTL).Err(); err != nil {
		utils.Logger.WithError(err).Debug("search cache write failed")
	}
}
