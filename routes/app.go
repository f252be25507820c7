package routes

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"checkinly-backend/config"
	"checkinly-backend/controllers"
	"checkinly-backend/events"
	"checkinly-backend/services"
)

// Services is the service graph shared by the HTTP layer and background jobs.
type Services struct {
	Auth          *services.AuthService
	Hotel         *services.HotelService
	Room          *services.RoomService
	Guest         *services.GuestService
	Booking       *services.BookingService
	Payment       *services.PaymentService
	SmartLock     *services.SmartLockService
	Search        *services.SearchService
	Demo          *services.DemoService
	Settings      *services.SettingsService
	Notifications *services.NotificationService
	LockMonitor   *services.LockMonitor
	Analytics     *services.AnalyticsService
}

// NewServices builds every service on db. rdb may be nil; pub receives the
// domain events.
func NewServices(cfg config.Config, db *gorm.DB, rdb *redis.Client, pub events.Publisher) *Services {
	settings := services.NewSettingsService(db, cfg.SettingsDir)
	notifications := services.NewNotificationService(db, settings)
	search := services.NewSearchService(db, rdb, cfg.SearchCacheTTL)

	rooms := services.NewRoomService(db, pub)
	rooms.SearchCache = search
	guests := services.NewGuestService(db, pub)
	guests.SearchCache = search
	bookings := services.NewBookingService(db, pub)
	bookings.SearchCache = search
	demo := services.NewDemoService(db)
	demo.SearchCache = search

	return &Services{
		Auth:          services.NewAuthService(db, pub, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.BcryptCost),
		Hotel:         services.NewHotelService(db),
		Room:          rooms,
		Guest:         guests,
		Booking:       bookings,
		Payment:       services.NewPaymentService(db, pub),
		SmartLock:     services.NewSmartLockService(db, pub),
		Search:        search,
		Demo:          demo,
		Settings:      settings,
		Notifications: notifications,
		LockMonitor:   services.NewLockMonitor(db, notifications, cfg.LowBatteryThreshold),
		Analytics:     services.NewAnalyticsService(db, cfg.LowBatteryThreshold),
	}
}

func NewControllers(s *Services) Controllers {
	return Controllers{
		Auth:         controllers.NewAuthController(s.Auth),
		Hotel:        controllers.NewHotelController(s.Hotel),
		Room:         controllers.NewRoomController(s.Room),
		Guest:        controllers.NewGuestController(s.Guest),
		Booking:      controllers.NewBookingController(s.Booking),
		Payment:      controllers.NewPaymentController(s.Payment),
		SmartLock:    controllers.NewSmartLockController(s.SmartLock),
		Search:       controllers.NewSearchController(s.Search),
		Demo:         controllers.NewDemoController(s.Demo),
		Settings:     controllers.NewSettingsController(s.Settings),
		Notification: controllers.NewNotificationController(s.Notifications),
		Analytics:    controllers.NewAnalyticsController(s.Analytics),
	}
}
