package models

import (
	"time"

	"gorm.io/gorm"
)

// A diet plan owned by a user. The Total* fields are derived: they must always
// equal the sum of the corresponding field across the diet's meals.
type Diet struct {
	gorm.Model
	UserID      uint       `gorm:"index;not null" json:"userId"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	DietType    string     `gorm:"default:training_day" json:"dietType"`
	IsActive    bool       `json:"isActive"`
	IsArchived  bool       `json:"isArchived"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`

	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	TotalFiber    float64 `json:"totalFiber"`

	Meals []Meal `gorm:"foreignKey:DietID;constraint:OnDelete:CASCADE" json:"meals"`
}

// One meal slot inside a diet. At most one meal exists per (DietID, MealType).
// Macros are derived from Items when the meal is itemized; the description
// path (free text plus an AI estimate) writes them directly.
type Meal struct {
	gorm.Model
	DietID      uint   `gorm:"index;not null" json:"dietId"`
	MealType    string `gorm:"not null" json:"mealType"` // breakfast, lunch, dinner, ...
	Name        string `json:"name"`
	Time        string `json:"time"`
	Description string `json:"description"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`

	Items []MealItem `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"items"`
}

// A single line item. Macro values are entered (or AI-estimated) directly,
// never derived.
type MealItem struct {
	gorm.Model
	MealID   uint    `gorm:"index;not null" json:"mealId"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}
