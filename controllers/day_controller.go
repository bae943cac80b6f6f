package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type DayController struct {
	Routines *services.RoutineService
}

func NewDayController(routines *services.RoutineService) *DayController {
	return &DayController{Routines: routines}
}

func (dc *DayController) AddDay(c *gin.Context) {
	var input services.AddDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := dc.Routines.AddWorkoutDay(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, day)
}

func (dc *DayController) UpdateDay(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UpdateDayInput
	if !bindStrictJSON(c, &input) {
		return
	}

	day, err := dc.Routines.UpdateWorkoutDay(c.GetUint("userID"), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (dc *DayController) DeleteDay(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := dc.Routines.DeleteWorkoutDay(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
