package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"jpaddress/internal/geocode"
	"jpaddress/internal/models"
	"jpaddress/internal/service"

	"github.com/gin-gonic/gin"
)

// ReverseGeocodeHandler handles reverse geocoding requests
type ReverseGeocodeHandler struct {
	service GeoCodingService
}

// GeoCodingService is the reverse geocoding service used by ReverseGeocodeHandler
type GeoCodingService interface {
	ReverseGeocode(context.Context, float64, float64) (*models.Location, error)
}

// NewReverseGeocodeHandler creates a new reverse geocode handler
func NewReverseGeocodeHandler(svc GeoCodingService) *ReverseGeocodeHandler {
	return &ReverseGeocodeHandler{service: svc}
}

// ReverseGeocode handles GET /reverse-geocode requests.
// Coordinates come either from lat/lon or from the center of a geohash cell.
//
//	@Summary	Find the nearest address within 10km
//	@Param		lat		query	number	false	"latitude"
//	@Param		lon		query	number	false	"longitude"
//	@Param		geohash	query	string	false	"geohash, used instead of lat/lon"
//	@Produce	json
//	@Success	200	{object}	models.Location
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/reverse-geocode [get]
func (h *ReverseGeocodeHandler) ReverseGeocode(c *gin.Context) {
	lat, lon, ok := coordinates(c)
	if !ok {
		return
	}

	location, err := h.service.ReverseGeocode(c.Request.Context(), lat, lon)
	if errors.Is(err, service.ErrCoordinatesOutOfRange) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if location == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no address found near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, location)
}

// coordinates reads the query point, writing a 400 response when it is unusable.
func coordinates(c *gin.Context) (lat, lon float64, ok bool) {
	if hash := c.Query("geohash"); hash != "" {
		lat, lon, err := geocode.Decode(hash)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid geohash"})
			return 0, 0, false
		}
		return lat, lon, true
	}

	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return 0, 0, false
	}

	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return 0, 0, false
	}

	return lat, lon, true
}
