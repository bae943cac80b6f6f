package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	gorm.Model
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `json:"name"`
	Role        string     `gorm:"default:USER" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	BannedAt    *time.Time `json:"bannedAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`

	// Pointers to the single routine/diet the user is currently following.
	// Invariant: if set, the target belongs to this user and IsActive=true.
	ActiveRoutineID *uint    `json:"activeRoutineId"`
	ActiveRoutine   *Routine `gorm:"foreignKey:ActiveRoutineID" json:"activeRoutine,omitempty"`
	ActiveDietID    *uint    `json:"activeDietId"`
	ActiveDiet      *Diet    `gorm:"foreignKey:ActiveDietID" json:"activeDiet,omitempty"`
}

func (u *User) Banned() bool {
	return !u.IsActive || u.BannedAt != nil
}
