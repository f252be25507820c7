package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type SmartLockController struct {
	LockSvc *services.SmartLockService
}

func NewSmartLockController(svc *services.SmartLockService) *SmartLockController {
	return &SmartLockController{LockSvc: svc}
}

func (lc *SmartLockController) GetLocks(c *gin.Context) {
	locks, err := lc.LockSvc.List(c.Request.Context(), middleware.HotelID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, locks)
}

func (lc *SmartLockController) GetLock(c *gin.Context) {
	lock, err := lc.LockSvc.Get(c.Request.Context(), middleware.HotelID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, lock)
}

func (lc *SmartLockController) CreateLock(c *gin.Context) {
	var in services.SmartLockInput
	if !bindJSON(c, &in) {
		return
	}
	lock, err := lc.LockSvc.Create(c.Request.Context(), middleware.HotelID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, lock)
}

func (lc *SmartLockController) UpdateLock(c *gin.Context) {
	var in services.SmartLockUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	lock, err := lc.LockSvc.Update(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, lock)
}

// POST /api/smart-locks/:id/status {"status":"locked"|"unlocked"}
func (lc *SmartLockController) SetStatus(c *gin.Context) {
	var in services.LockStatusInput
	if !bindJSON(c, &in) {
		return
	}
	lock, err := lc.LockSvc.SetStatus(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, lock)
}

// POST /api/smart-locks/:id/heartbeat
func (lc *SmartLockController) Heartbeat(c *gin.Context) {
	var in services.HeartbeatInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &in) {
		return
	}
	lock, err := lc.LockSvc.Heartbeat(c.Request.Context(), middleware.HotelID(c), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, lock)
}

func (lc *SmartLockController) DeleteLock(c *gin.Context) {
	if err := lc.LockSvc.Delete(c.Request.Context(), middleware.HotelID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Smart lock removed")
}
