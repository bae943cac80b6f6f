package models

import "gorm.io/gorm"

// A standalone recipe; not part of the diet aggregation graph.
type Recipe struct {
	gorm.Model
	UserID        uint   `gorm:"index;not null" json:"userId"`
	Name          string `gorm:"not null" json:"name"`
	Description   string `json:"description"`
	Instructions  string `gorm:"type:text;not null" json:"instructions"` // JSON array or plain text
	Ingredients   string `gorm:"type:text;not null" json:"ingredients"`  // JSON array or plain text
	Servings      int    `gorm:"default:1" json:"servings"`
	PrepTime      int    `json:"prepTime"` // minutes
	CookTime      int    `json:"cookTime"`
	ImageURL      string `json:"imageUrl"`
	IsAiGenerated bool   `json:"isAiGenerated"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
