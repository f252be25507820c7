package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type NotificationController struct {
	NotificationSvc *services.NotificationService
}

func NewNotificationController(svc *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationSvc: svc}
}

// GET /api/notifications?limit=
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	list, err := nc.NotificationSvc.List(c.Request.Context(), middleware.HotelID(c), queryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// PATCH /api/notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	if err := nc.NotificationSvc.MarkRead(c.Request.Context(), middleware.HotelID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Notification marked as read")
}

// POST /api/notifications/read-all
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	n, err := nc.NotificationSvc.MarkAllRead(c.Request.Context(), middleware.HotelID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": n})
}

func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	if err := nc.NotificationSvc.Delete(c.Request.Context(), middleware.HotelID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Notification deleted")
}
