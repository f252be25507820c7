package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"checkinly-backend/utils"
)

// Recovery turns a panic into a logged 500 with the usual error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		utils.Logger.WithField("path", c.Request.URL.Path).
			Errorf("💥 panic: %v\n%s", recovered, debug.Stack())
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	})
}
