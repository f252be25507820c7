package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type HotelController struct {
	HotelSvc *services.HotelService
}

func NewHotelController(svc *services.HotelService) *HotelController {
	return &HotelController{HotelSvc: svc}
}

// GET /api/hotel
func (hc *HotelController) GetHotel(c *gin.Context) {
	out, err := hc.HotelSvc.GetForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// POST /api/hotel/setup
func (hc *HotelController) Setup(c *gin.Context) {
	var in services.HotelSetupInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := hc.HotelSvc.Setup(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, out)
}

// PUT /api/hotel
func (hc *HotelController) UpdateHotel(c *gin.Context) {
	var in services.HotelUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	hotel, err := hc.HotelSvc.Update(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

// GET /api/hotel/members
func (hc *HotelController) GetMembers(c *gin.Context) {
	members, err := hc.HotelSvc.ListMembers(c.Request.Context(), middleware.HotelID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, members)
}

// POST /api/hotel/members
func (hc *HotelController) AddMember(c *gin.Context) {
	var in services.MemberInput
	if !bindJSON(c, &in) {
		return
	}
	profile, err := hc.HotelSvc.AddMember(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, profile)
}

// PUT /api/hotel/members/:id/role
func (hc *HotelController) UpdateMemberRole(c *gin.Context) {
	var in services.RoleInput
	if !bindJSON(c, &in) {
		return
	}
	profile, err := hc.HotelSvc.UpdateMemberRole(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}
