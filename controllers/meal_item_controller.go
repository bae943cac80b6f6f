package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type MealItemController struct {
	Ledger *services.LedgerService
}

func NewMealItemController(ledger *services.LedgerService) *MealItemController {
	return &MealItemController{Ledger: ledger}
}

func (ic *MealItemController) AddItem(c *gin.Context) {
	var input services.AddItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ic.Ledger.AddMealItem(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ic *MealItemController) DeleteItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ic.Ledger.DeleteMealItem(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
