package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

// ----------------------------------------------------
// Hotel settings
// ----------------------------------------------------
func (sc *SettingsController) GetHotelSettings(c *gin.Context) {
	out, err := sc.SettingsSvc.HotelSettings(c.Request.Context(), middleware.HotelID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

func (sc *SettingsController) UpdateHotelSettings(c *gin.Context) {
	var in services.HotelSettings
	if !bindJSON(c, &in) {
		return
	}
	out, err := sc.SettingsSvc.SaveHotelSettings(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// ----------------------------------------------------
// Notification settings
// ----------------------------------------------------
func (sc *SettingsController) GetNotificationSettings(c *gin.Context) {
	out, err := sc.SettingsSvc.NotificationSettings(c.Request.Context(), middleware.HotelID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

func (sc *SettingsController) UpdateNotificationSettings(c *gin.Context) {
	var in services.NotificationSettings
	if !bindJSON(c, &in) {
		return
	}
	out, err := sc.SettingsSvc.SaveNotificationSettings(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// POST /api/settings/notifications/reset
func (sc *SettingsController) ResetNotificationSettings(c *gin.Context) {
	out, err := sc.SettingsSvc.ResetNotificationSettings(c.Request.Context(), middleware.HotelID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}
