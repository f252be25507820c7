package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"checkinly-backend/config"
	"checkinly-backend/controllers"
	"checkinly-backend/middleware"
	"checkinly-backend/models"
	"checkinly-backend/services"
)

// Controllers groups the handlers mounted under /api.
type Controllers struct {
	Auth         *controllers.AuthController
	Hotel        *controllers.HotelController
	Room         *controllers.RoomController
	Guest        *controllers.GuestController
	Booking      *controllers.BookingController
	Payment      *controllers.PaymentController
	SmartLock    *controllers.SmartLockController
	Search       *controllers.SearchController
	Demo         *controllers.DemoController
	Settings     *controllers.SettingsController
	Notification *controllers.NotificationController
	Analytics    *controllers.AnalyticsController
}

// SetupRouter wires middleware and routes. rdb may be nil.
func SetupRouter(
	cfg config.Config,
	rdb *redis.Client,
	authSvc *services.AuthService,
	hotelSvc *services.HotelService,
	ctl Controllers,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: cfg.AllowCredentials(),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	requireAuth := middleware.JWTAuth(authSvc)

	auth := api.Group("/auth")
	{
		limited := auth.Group("", middleware.RateLimit(cfg.RateLimit, rdb))
		limited.POST("/signup", ctl.Auth.SignUp)
		limited.POST("/signin", ctl.Auth.SignIn)

		auth.GET("/session", ctl.Auth.Session)
		auth.POST("/signout", requireAuth, ctl.Auth.SignOut)
	}

	// signed in, hotel not required yet
	account := api.Group("", requireAuth)
	{
		account.GET("/hotel", ctl.Hotel.GetHotel)
		account.POST("/hotel/setup", ctl.Hotel.Setup)
		account.POST("/demo/seed", ctl.Demo.Seed)
	}

	tenant := api.Group("", requireAuth, middleware.RequireHotel(hotelSvc))
	managers := middleware.RequireRole(models.RoleAdmin, models.RoleManager)

	hotel := tenant.Group("/hotel")
	{
		hotel.PUT("", managers, ctl.Hotel.UpdateHotel)
		hotel.GET("/members", ctl.Hotel.GetMembers)
		hotel.POST("/members", middleware.RequireRole(models.RoleAdmin), ctl.Hotel.AddMember)
		hotel.PUT("/members/:id/role", middleware.RequireRole(models.RoleAdmin), ctl.Hotel.UpdateMemberRole)
	}

	rooms := tenant.Group("/rooms")
	{
		rooms.GET("", ctl.Room.GetRooms)
		rooms.POST("", ctl.Room.CreateRoom)
		rooms.GET("/:id", ctl.Room.GetRoom)
		rooms.PUT("/:id", ctl.Room.UpdateRoom)
		rooms.PATCH("/:id", ctl.Room.UpdateRoom)
		rooms.PATCH("/:id/status", ctl.Room.UpdateRoomStatus)
		rooms.DELETE("/:id", ctl.Room.DeleteRoom)
	}

	guests := tenant.Group("/guests")
	{
		guests.GET("", ctl.Guest.GetGuests)
		guests.POST("", ctl.Guest.CreateGuest)
		guests.GET("/:id", ctl.Guest.GetGuest)
		guests.PUT("/:id", ctl.Guest.UpdateGuest)
		guests.PATCH("/:id", ctl.Guest.UpdateGuest)
		guests.DELETE("/:id", ctl.Guest.DeleteGuest)
	}

	bookings := tenant.Group("/bookings")
	{
		bookings.GET("", ctl.Booking.GetBookings)
		bookings.POST("", ctl.Booking.CreateBooking)
		bookings.GET("/:id", ctl.Booking.GetBooking)
		bookings.PUT("/:id", ctl.Booking.UpdateBooking)
		bookings.PATCH("/:id", ctl.Booking.UpdateBooking)
		bookings.POST("/:id/checkin", ctl.Booking.CheckIn)
		bookings.POST("/:id/checkout", ctl.Booking.CheckOut)
		bookings.DELETE("/:id", ctl.Booking.DeleteBooking)
	}

	payments := tenant.Group("/payments")
	{
		payments.GET("", ctl.Payment.GetPayments)
		payments.GET("/summary", ctl.Payment.GetSummary)
		payments.POST("", ctl.Payment.CreatePayment)
		payments.GET("/:id", ctl.Payment.GetPayment)
		payments.PUT("/:id", ctl.Payment.UpdatePayment)
		payments.PATCH("/:id", ctl.Payment.UpdatePayment)
		payments.DELETE("/:id", ctl.Payment.DeletePayment)
	}

	locks := tenant.Group("/smart-locks")
	{
		locks.GET("", ctl.SmartLock.GetLocks)
		locks.POST("", ctl.SmartLock.CreateLock)
		locks.GET("/:id", ctl.SmartLock.GetLock)
		locks.PUT("/:id", ctl.SmartLock.UpdateLock)
		locks.PATCH("/:id", ctl.SmartLock.UpdateLock)
		locks.POST("/:id/status", ctl.SmartLock.SetStatus)
		locks.POST("/:id/heartbeat", ctl.SmartLock.Heartbeat)
		locks.DELETE("/:id", ctl.SmartLock.DeleteLock)
	}

	tenant.GET("/search", ctl.Search.Search)

	settings := tenant.Group("/settings")
	{
		settings.GET("/hotel", ctl.Settings.GetHotelSettings)
		settings.PUT("/hotel", managers, ctl.Settings.UpdateHotelSettings)
		settings.GET("/notifications", ctl.Settings.GetNotificationSettings)
		settings.PUT("/notifications", ctl.Settings.UpdateNotificationSettings)
		settings.POST("/notifications/reset", ctl.Settings.ResetNotificationSettings)
	}

	notifications := tenant.Group("/notifications")
	{
		notifications.GET("", ctl.Notification.GetNotifications)
		notifications.POST("/read-all", ctl.Notification.MarkAllRead)
		notifications.PATCH("/:id/read", ctl.Notification.MarkRead)
		notifications.DELETE("/:id", ctl.Notification.DeleteNotification)
	}

	tenant.GET("/analytics/summary", ctl.Analytics.GetSummary)

	return r
}
