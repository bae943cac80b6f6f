package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type RoutineController struct {
	Routines *services.RoutineService
}

func NewRoutineController(routines *services.RoutineService) *RoutineController {
	return &RoutineController{Routines: routines}
}

func (rc *RoutineController) ListRoutines(c *gin.Context) {
	archived := c.Query("archived") == "true"
	routines, err := rc.Routines.ListRoutines(c.GetUint("userID"), archived)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routines)
}

func (rc *RoutineController) CreateRoutine(c *gin.Context) {
	var input services.CreateRoutineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	routine, err := rc.Routines.CreateRoutine(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, routine)
}

func (rc *RoutineController) GetRoutine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	routine, err := rc.Routines.GetRoutine(c.GetUint("userID"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (rc *RoutineController) UpdateRoutine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UpdateRoutineInput
	if !bindStrictJSON(c, &input) {
		return
	}

	routine, err := rc.Routines.UpdateRoutine(c.GetUint("userID"), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routine)
}

func (rc *RoutineController) DeleteRoutine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := rc.Routines.DeleteRoutine(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
