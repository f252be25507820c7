package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// GET /api/rooms?status=&room_type=&floor=&q=
func (rc *RoomController) GetRooms(c *gin.Context) {
	var f services.RoomFilter
	if !bindQuery(c, &f) {
		return
	}
	rooms, err := rc.RoomSvc.List(c.Request.Context(), middleware.HotelID(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	room, err := rc.RoomSvc.Get(c.Request.Context(), middleware.HotelID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := rc.RoomSvc.Create(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	var in services.RoomUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := rc.RoomSvc.Update(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// PATCH /api/rooms/:id/status
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	var in services.RoomStatusInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := rc.RoomSvc.UpdateStatus(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.RoomSvc.Delete(c.Request.Context(), middleware.HotelID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room deleted")
}
