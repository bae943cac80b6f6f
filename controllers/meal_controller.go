package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Ledger *services.LedgerService
}

func NewMealController(ledger *services.LedgerService) *MealController {
	return &MealController{Ledger: ledger}
}

// UpsertMeal creates or updates the meal of a given type within a diet and
// refreshes the diet rollup.
func (mc *MealController) UpsertMeal(c *gin.Context) {
	var input services.UpsertMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := mc.Ledger.UpsertMealByDescription(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}
