package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/services"
	"checkinly-backend/utils"
)

// RequireHotel resolves the caller's hotel; it must run after JWTAuth.
func RequireHotel(hotels *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hc, err := hotels.GetForUser(c.Request.Context(), UserID(c))
		if err != nil {
			if errors.Is(err, services.ErrNoHotel) {
				utils.JSONError(c, http.StatusConflict, "Hotel setup required")
				return
			}
			utils.Logger.WithError(err).Error("❌ hotel lookup failed")
			utils.JSONError(c, http.StatusInternalServerError, "Could not load hotel")
			return
		}

		c.Set(KeyHotelID, hc.Hotel.ID)
		c.Set(KeyProfileID, hc.Profile.ID)
		c.Set(KeyRole, hc.Profile.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose hotel role is not listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[Role(c)] {
			utils.JSONError(c, http.StatusForbidden, "You do not have permission to do that")
			return
		}
		c.Next()
	}
}
