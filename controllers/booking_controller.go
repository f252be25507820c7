package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// GET /api/bookings?status=&guest_id=&room_id=&from=&to=
func (bc *BookingController) GetBookings(c *gin.Context) {
	var f services.BookingFilter
	if !bindQuery(c, &f) {
		return
	}
	bookings, err := bc.BookingSvc.List(c.Request.Context(), middleware.HotelID(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	b, err := bc.BookingSvc.Get(c.Request.Context(), middleware.HotelID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var in services.BookingInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := bc.BookingSvc.Create(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	var in services.BookingUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	b, err := bc.BookingSvc.Update(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// POST /api/bookings/:id/checkin
func (bc *BookingController) CheckIn(c *gin.Context) {
	b, err := bc.BookingSvc.CheckIn(c.Request.Context(), middleware.HotelID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// POST /api/bookings/:id/checkout
func (bc *BookingController) CheckOut(c *gin.Context) {
	b, err := bc.BookingSvc.CheckOut(c.Request.Context(), middleware.HotelID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	if err := bc.BookingSvc.Delete(c.Request.Context(), middleware.HotelID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Booking deleted")
}
