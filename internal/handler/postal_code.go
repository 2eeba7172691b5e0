package handler

import (
	"context"
	"errors"
	"net/http"

	"jpaddress/internal/models"
	"jpaddress/internal/service"

	"github.com/gin-gonic/gin"
)

// PostalCodeHandler handles postal code lookups
type PostalCodeHandler struct {
	service PostalCodeService
}

// PostalCodeService interface for dependency injection
type PostalCodeService interface {
	Lookup(context.Context, string) ([]models.Location, error)
}

// NewPostalCodeHandler creates a new postal code handler
func NewPostalCodeHandler(svc PostalCodeService) *PostalCodeHandler {
	return &PostalCodeHandler{service: svc}
}

// Lookup handles GET /postal-code/:code requests
//
//	@Summary	List addresses of a postal code
//	@Param		code	path	string	true	"7-digit postal code, hyphen allowed"
//	@Produce	json
//	@Success	200	{array}	models.Location
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/postal-code/{code} [get]
func (h *PostalCodeHandler) Lookup(c *gin.Context) {
	locations, err := h.service.Lookup(c.Request.Context(), c.Param("code"))
	if errors.Is(err, service.ErrInvalidPostalCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postal code must be 7 digits"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if len(locations) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no address found for the postal code"})
		return
	}

	c.JSON(http.StatusOK, locations)
}
