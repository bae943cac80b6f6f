package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type DietController struct {
	Ledger *services.LedgerService
}

func NewDietController(ledger *services.LedgerService) *DietController {
	return &DietController{Ledger: ledger}
}

func (dc *DietController) ListDiets(c *gin.Context) {
	archived := c.Query("archived") == "true"
	diets, err := dc.Ledger.ListDiets(c.GetUint("userID"), archived)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, diets)
}

func (dc *DietController) CreateDiet(c *gin.Context) {
	var input services.CreateDietInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diet, err := dc.Ledger.CreateDiet(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, diet)
}

func (dc *DietController) GetDiet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	diet, err := dc.Ledger.GetDiet(c.GetUint("userID"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, diet)
}

func (dc *DietController) UpdateDiet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UpdateDietInput
	if !bindStrictJSON(c, &input) {
		return
	}

	diet, err := dc.Ledger.UpdateDiet(c.GetUint("userID"), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, diet)
}

func (dc *DietController) DeleteDiet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := dc.Ledger.DeleteDiet(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
