package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	Routines *services.RoutineService
}

func NewExerciseController(routines *services.RoutineService) *ExerciseController {
	return &ExerciseController{Routines: routines}
}

func (ec *ExerciseController) AddExercise(c *gin.Context) {
	var input services.AddExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exercise, err := ec.Routines.AddExercise(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (ec *ExerciseController) UpdateExercise(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UpdateExerciseInput
	if !bindStrictJSON(c, &input) {
		return
	}

	exercise, err := ec.Routines.UpdateExercise(c.GetUint("userID"), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (ec *ExerciseController) DeleteExercise(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ec.Routines.DeleteExercise(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
