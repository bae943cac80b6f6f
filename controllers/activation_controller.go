package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

// ActivationController handles the activate/archive lifecycle shared by
// routines and diets. The entity type comes from the route group so
// /routines/:id/activate and /diets/:id/activate share one handler set.
type ActivationController struct {
	Activation *services.ActivationService
	entityType string
}

func NewActivationController(activation *services.ActivationService, entityType string) *ActivationController {
	return &ActivationController{Activation: activation, entityType: entityType}
}

func (ac *ActivationController) Activate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ac.Activation.SetActive(c.GetUint("userID"), ac.entityType, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *ActivationController) Archive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ac.Activation.Archive(c.GetUint("userID"), ac.entityType, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *ActivationController) Reactivate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ac.Activation.Reactivate(c.GetUint("userID"), ac.entityType, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
