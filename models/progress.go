package models

import (
	"time"

	"gorm.io/gorm"
)

// A timestamped snapshot of body measurements and photo references.
// Independent of the nutrition ledger.
type PhysicalProgress struct {
	gorm.Model
	UserID uint      `gorm:"index;not null" json:"userId"`
	Date   time.Time `json:"date"`

	BodyWeight           float64 `json:"bodyWeight"` // kg
	BackMeasurement      float64 `json:"backMeasurement"`
	ChestMeasurement     float64 `json:"chestMeasurement"`
	LeftArmMeasurement   float64 `json:"leftArmMeasurement"`
	RightArmMeasurement  float64 `json:"rightArmMeasurement"`
	AbdomenMeasurement   float64 `json:"abdomenMeasurement"`
	GlutesMeasurement    float64 `json:"glutesMeasurement"`
	LeftLegMeasurement   float64 `json:"leftLegMeasurement"`
	RightLegMeasurement  float64 `json:"rightLegMeasurement"`

	FrontPhoto string `json:"frontPhoto"`
	SidePhoto  string `json:"sidePhoto"`
	BackPhoto  string `json:"backPhoto"`
	ExtraPhoto string `json:"extraPhoto"`
	Notes      string `json:"notes"`
}
