package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type DemoController struct {
	DemoSvc *services.DemoService
}

func NewDemoController(svc *services.DemoService) *DemoController {
	return &DemoController{DemoSvc: svc}
}

// POST /api/demo/seed; an empty body seeds the default amounts.
func (dc *DemoController) Seed(c *gin.Context) {
	var in services.DemoInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &in) {
		return
	}
	res, err := dc.DemoSvc.Seed(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}
