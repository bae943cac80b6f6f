package services

import (
	"encoding/json"

	"github.com/agenciadecir/gympro/models"

	"gorm.io/gorm"
)

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

type CreateRecipeInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Instructions json.RawMessage `json:"instructions"` // string or array
	Ingredients  json.RawMessage `json:"ingredients"`
	Servings     int             `json:"servings"`
	PrepTime     int             `json:"prepTime"`
	CookTime     int             `json:"cookTime"`
	Calories     float64         `json:"calories"`
	Protein      float64         `json:"protein"`
	Carbs        float64         `json:"carbs"`
	Fat          float64         `json:"fat"`
	ImageURL     string          `json:"imageUrl"`
}

type UpdateRecipeInput struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Instructions *json.RawMessage `json:"instructions"`
	Ingredients  *json.RawMessage `json:"ingredients"`
	Servings     *int             `json:"servings"`
	PrepTime     *int             `json:"prepTime"`
	CookTime     *int             `json:"cookTime"`
	Calories     *float64         `json:"calories"`
	Protein      *float64         `json:"protein"`
	Carbs        *float64         `json:"carbs"`
	Fat          *float64         `json:"fat"`
	ImageURL     *string          `json:"imageUrl"`
}

// rawToText stores a JSON string as its content and anything else (arrays of
// steps or ingredients) verbatim.
func rawToText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (s *RecipeService) CreateRecipe(userID uint, in CreateRecipeInput) (*models.Recipe, error) {
	if in.Name == "" || len(in.Instructions) == 0 || len(in.Ingredients) == 0 {
		return nil, ErrInvalidInput
	}

	recipe := models.Recipe{
		UserID:       userID,
		Name:         in.Name,
		Description:  in.Description,
		Instructions: rawToText(in.Instructions),
		Ingredients:  rawToText(in.Ingredients),
		Servings:     in.Servings,
		PrepTime:     in.PrepTime,
		CookTime:     in.CookTime,
		Calories:     in.Calories,
		Protein:      in.Protein,
		Carbs:        in.Carbs,
		Fat:          in.Fat,
		ImageURL:     in.ImageURL,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SaveGenerated persists a recipe produced by the AI collaborator.
func (s *RecipeService) SaveGenerated(userID uint, gen *GeneratedRecipe) (*models.Recipe, error) {
	instructions, _ := json.Marshal(gen.Instructions)
	ingredients, _ := json.Marshal(gen.Ingredients)

	recipe := models.Recipe{
		UserID:        userID,
		Name:          gen.Name,
		Description:   gen.Description,
		Instructions:  string(instructions),
		Ingredients:   string(ingredients),
		Servings:      gen.Servings,
		PrepTime:      gen.PrepTime,
		CookTime:      gen.CookTime,
		Calories:      gen.Calories,
		Protein:       gen.Protein,
		Carbs:         gen.Carbs,
		Fat:           gen.Fat,
		IsAiGenerated: true,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) ListRecipes(userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&recipes).Error
	return recipes, err
}

func (s *RecipeService) GetRecipe(userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &recipe, nil
}

func (s *RecipeService) UpdateRecipe(userID, recipeID uint, in UpdateRecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error; err != nil {
		return nil, notFoundOr(err)
	}

	if in.Name != nil {
		recipe.Name = *in.Name
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	if in.Instructions != nil {
		recipe.Instructions = rawToText(*in.Instructions)
	}
	if in.Ingredients != nil {
		recipe.Ingredients = rawToText(*in.Ingredients)
	}
	if in.Servings != nil {
		recipe.Servings = *in.Servings
	}
	if in.PrepTime != nil {
		recipe.PrepTime = *in.PrepTime
	}
	if in.CookTime != nil {
		recipe.CookTime = *in.CookTime
	}
	if in.Calories != nil {
		recipe.Calories = *in.Calories
	}
	if in.Protein != nil {
		recipe.Protein = *in.Protein
	}
	if in.Carbs != nil {
		recipe.Carbs = *in.Carbs
	}
	if in.Fat != nil {
		recipe.Fat = *in.Fat
	}
	if in.ImageURL != nil {
		recipe.ImageURL = *in.ImageURL
	}

	if err := s.db.Save(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) DeleteRecipe(userID, recipeID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", recipeID, userID).Delete(&models.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
