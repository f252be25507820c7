package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"checkinly-backend/services"
	"checkinly-backend/utils"
)

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		code := http.StatusBadRequest
		if errors.Is(err, services.ErrConflict) {
			code = http.StatusConflict
		}
		msg := "Please check the highlighted fields"
		if len(ve.Fields) == 1 {
			for _, m := range ve.Fields {
				msg = m
			}
		} else if len(ve.Fields) == 0 {
			msg = ve.Error()
		}
		utils.JSONFieldErrors(c, code, msg, ve.Fields)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrNoHotel):
		utils.JSONError(c, http.StatusConflict, "Hotel setup required")
	case errors.Is(err, services.ErrLockOffline):
		utils.JSONError(c, http.StatusConflict, "Lock is offline and cannot be controlled")
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrUnauthorized):
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
	default:
		_ = c.Error(err)
		utils.Logger.WithError(err).Errorf("❌ %s %s", c.Request.Method, c.FullPath())
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters")
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
