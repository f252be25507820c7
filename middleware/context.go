package middleware

import "github.com/gin-gonic/gin"

// Keys set on the gin context by the auth and tenant middleware.
const (
	KeyUserID    = "user_id"
	KeySessionID = "session_id"
	KeyHotelID   = "hotel_id"
	KeyProfileID = "profile_id"
	KeyRole      = "role"
)

func UserID(c *gin.Context) string    { return c.GetString(KeyUserID) }
func SessionID(c *gin.Context) string { return c.GetString(KeySessionID) }
func HotelID(c *gin.Context) string   { return c.GetString(KeyHotelID) }
func Role(c *gin.Context) string      { return c.GetString(KeyRole) }
