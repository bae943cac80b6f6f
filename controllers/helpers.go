package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP. Anything outside
// the taxonomy is a persistence or upstream failure and stays generic.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case errors.Is(err, services.ErrLimitExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit exceeded"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrAnalysisFailed):
		// Raw upstream text goes back for diagnostic display.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindStrictJSON decodes an update payload rejecting unknown fields, so a
// drifting client cannot silently write columns we never meant to expose.
func bindStrictJSON(c *gin.Context, dst any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
