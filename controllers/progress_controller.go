package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *services.ProgressService
}

func NewProgressController(progress *services.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

func (pc *ProgressController) ListProgress(c *gin.Context) {
	records, err := pc.Progress.ListProgress(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (pc *ProgressController) CreateProgress(c *gin.Context) {
	var input services.ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := pc.Progress.CreateProgress(c.Request.Context(), c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (pc *ProgressController) UpdateProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.ProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := pc.Progress.UpdateProgress(c.Request.Context(), c.GetUint("userID"), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (pc *ProgressController) DeleteProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := pc.Progress.DeleteProgress(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
