package handler

import (
	"context"
	"net/http"

	"jpaddress/internal/models"

	"github.com/gin-gonic/gin"
)

// GeoCodeHandler handles geocoding requests
type GeoCodeHandler struct {
	service GeoCodeService
}

// GeoCodeService is the geocoding service used by GeoCodeHandler
type GeoCodeService interface {
	Geocode(context.Context, string) ([]models.Location, error)
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

// GeoCode handles GET /geocode requests
//
//	@Summary	Search addresses by name
//	@Param		q	query	string	true	"address text, e.g. 東京都千代田区丸の内"
//	@Produce	json
//	@Success	200	{array}	models.Location
//	@Failure	400	{object}	map[string]string
//	@Router		/geocode [get]
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	locations, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, locations)
}
