package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type SearchController struct {
	SearchSvc *services.SearchService
}

func NewSearchController(svc *services.SearchService) *SearchController {
	return &SearchController{SearchSvc: svc}
}

// GET /api/search?q=
func (sc *SearchController) Search(c *gin.Context) {
	results, err := sc.SearchSvc.Search(c.Request.Context(), middleware.HotelID(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, results)
}
