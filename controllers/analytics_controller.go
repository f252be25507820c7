package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type AnalyticsController struct {
	AnalyticsSvc *services.AnalyticsService
	Now          func() time.Time
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsSvc: svc, Now: time.Now}
}

// GET /api/analytics/summary
func (ac *AnalyticsController) GetSummary(c *gin.Context) {
	sum, err := ac.AnalyticsSvc.Summary(c.Request.Context(), middleware.HotelID(c), ac.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, sum)
}
