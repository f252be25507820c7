package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// GET /api/payments?status=&method=&booking_id=
func (pc *PaymentController) GetPayments(c *gin.Context) {
	var f services.PaymentFilter
	if !bindQuery(c, &f) {
		return
	}
	payments, err := pc.PaymentSvc.List(c.Request.Context(), middleware.HotelID(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

// GET /api/payments/summary
func (pc *PaymentController) GetSummary(c *gin.Context) {
	sum, err := pc.PaymentSvc.Summary(c.Request.Context(), middleware.HotelID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, sum)
}

func (pc *PaymentController) GetPayment(c *gin.Context) {
	p, err := pc.PaymentSvc.Get(c.Request.Context(), middleware.HotelID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var in services.PaymentInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := pc.PaymentSvc.Create(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, p)
}

func (pc *PaymentController) UpdatePayment(c *gin.Context) {
	var in services.PaymentUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := pc.PaymentSvc.Update(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, p)
}

func (pc *PaymentController) DeletePayment(c *gin.Context) {
	if err := pc.PaymentSvc.Delete(c.Request.Context(), middleware.HotelID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Payment deleted")
}
