package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"checkinly-backend/services"
	"checkinly-backend/utils"
)

// BearerToken returns the token from the Authorization header, or "".
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// JWTAuth admits requests carrying a token for a live session and stores the
// user and session ids on the context.
func JWTAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerToken(c)
		if raw == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, session, err := auth.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				utils.JSONError(c, http.StatusUnauthorized, "Your session has expired. Please sign in again.")
				return
			}
			utils.Logger.WithError(err).Error("❌ session lookup failed")
			utils.JSONError(c, http.StatusInternalServerError, "Could not verify session")
			return
		}

		c.Set(KeyUserID, user.ID)
		c.Set(KeySessionID, session.ID)
		c.Next()
	}
}
