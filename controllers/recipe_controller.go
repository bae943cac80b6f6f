package controllers

import (
	"net/http"

	"github.com/agenciadecir/gympro/services"

	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	Recipes *services.RecipeService
}

func NewRecipeController(recipes *services.RecipeService) *RecipeController {
	return &RecipeController{Recipes: recipes}
}

func (rc *RecipeController) ListRecipes(c *gin.Context) {
	recipes, err := rc.Recipes.ListRecipes(c.GetUint("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (rc *RecipeController) CreateRecipe(c *gin.Context) {
	var input services.CreateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := rc.Recipes.CreateRecipe(c.GetUint("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (rc *RecipeController) GetRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	recipe, err := rc.Recipes.GetRecipe(c.GetUint("userID"), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (rc *RecipeController) UpdateRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.UpdateRecipeInput
	if !bindStrictJSON(c, &input) {
		return
	}

	recipe, err := rc.Recipes.UpdateRecipe(c.GetUint("userID"), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (rc *RecipeController) DeleteRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := rc.Recipes.DeleteRecipe(c.GetUint("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
