package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

// GET /api/guests?q=
func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.GuestSvc.List(c.Request.Context(), middleware.HotelID(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	guest, err := gc.GuestSvc.Get(c.Request.Context(), middleware.HotelID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// POST /api/guests; with room_id the guest is checked into that room.
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var in services.GuestInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := gc.GuestSvc.Create(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}

func (gc *GuestController) UpdateGuest(c *gin.Context) {
	var in services.GuestUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	guest, err := gc.GuestSvc.Update(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (gc *GuestController) DeleteGuest(c *gin.Context) {
	if err := gc.GuestSvc.Delete(c.Request.Context(), middleware.HotelID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Guest deleted")
}
