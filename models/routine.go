package models

import (
	"gorm.io/gorm"
)

// A training routine owned by a user. IsActive and IsArchived are mutually
// exclusive: archiving clears the active flag.
type Routine struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"userId"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	IsArchived  bool   `json:"isArchived"`
	AIAnalysis  string `gorm:"type:text" json:"aiAnalysis,omitempty"`

	Days []WorkoutDay `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"days"`
}

// One planned day inside a routine, numbered 1..7.
type WorkoutDay struct {
	gorm.Model
	RoutineID uint   `gorm:"index;not null" json:"routineId"`
	Name      string `json:"name"`
	DayNumber int    `json:"dayNumber"`

	Exercises []Exercise `gorm:"foreignKey:WorkoutDayID;constraint:OnDelete:CASCADE" json:"exercises"`
}

type Exercise struct {
	gorm.Model
	WorkoutDayID uint    `gorm:"index;not null" json:"workoutDayId"`
	Name         string  `gorm:"not null" json:"name"`
	MuscleGroup  string  `json:"muscleGroup"`
	Sets         int     `json:"sets"`
	Reps         string  `json:"reps"` // free form: "8-12", "AMRAP"
	Weight       float64 `json:"weight"`
	WeightUnit   string  `gorm:"default:kg" json:"weightUnit"`
	Notes        string  `json:"notes"`
	Order        int     `gorm:"column:exercise_order" json:"order"`
}
