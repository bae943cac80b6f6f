package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

// AIController exposes the analysis endpoints. Estimates and analyses are
// returned to the caller; persisting them (saving a generated recipe, storing
// a routine analysis) happens through the owning service so ownership checks
// stay in one place.
type AIController struct {
	AI       *services.AIService
	Routines *services.RoutineService
	Recipes  *services.RecipeService
	Ledger   *services.LedgerService
}

func NewAIController(ai *services.AIService, routines *services.RoutineService, recipes *services.RecipeService, ledger *services.LedgerService) *AIController {
	return &AIController{AI: ai, Routines: routines, Recipes: recipes, Ledger: ledger}
}

type AnalyzeMealInput struct {
	Description string `json:"description" binding:"required"`
	MealType    string `json:"mealType"`
}

func (ac *AIController) AnalyzeMeal(c *gin.Context) {
	var input AnalyzeMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := ac.AI.AnalyzeMeal(c.Request.Context(), input.Description, input.MealType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

type AnalyzeDietInput struct {
	DietID *uint             `json:"dietId"`
	Meals  map[string]string `json:"meals"`
}

// AnalyzeDiet accepts either a map of meal descriptions or a diet ID whose
// stored meals are used instead.
func (ac *AIController) AnalyzeDiet(c *gin.Context) {
	var input AnalyzeDietInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meals := input.Meals
	if input.DietID != nil {
		diet, err := ac.Ledger.GetDiet(c.GetUint("userID"), *input.DietID)
		if err != nil {
			respondError(c, err)
			return
		}
		meals = make(map[string]string, len(diet.Meals))
		for _, m := range diet.Meals {
			meals[m.MealType] = m.Description
		}
	}

	analysis, err := ac.AI.AnalyzeDiet(c.Request.Context(), meals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

type GenerateRecipeInput struct {
	services.RecipeRequest
	Save bool `json:"save"`
}

func (ac *AIController) GenerateRecipe(c *gin.Context) {
	var input GenerateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := ac.AI.GenerateRecipe(c.Request.Context(), input.RecipeRequest)
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Save {
		saved, err := ac.Recipes.SaveGenerated(c.GetUint("userID"), recipe)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

type AnalyzeRoutineInput struct {
	RoutineID uint   `json:"routineId" binding:"required"`
	Goal      string `json:"goal"`
	Diet      string `json:"diet"`
}

func (ac *AIController) AnalyzeRoutine(c *gin.Context) {
	var input AnalyzeRoutineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	routine, err := ac.Routines.GetRoutine(userID, input.RoutineID)
	if err != nil {
		respondError(c, err)
		return
	}

	analysis, err := ac.AI.AnalyzeRoutine(c.Request.Context(), routine, input.Goal, input.Diet)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ac.Routines.SetAnalysis(userID, routine.ID, analysis); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
