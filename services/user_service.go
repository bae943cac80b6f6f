package services

import (
	"github.com/agenciadecir/gympro/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetProfile returns the user with the currently followed routine and diet
// fully populated for the dashboard.
func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.
		Preload("ActiveRoutine.Days", func(db *gorm.DB) *gorm.DB { return db.Order("day_number ASC") }).
		Preload("ActiveRoutine.Days.Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("exercise_order ASC") }).
		Preload("ActiveDiet.Meals", func(db *gorm.DB) *gorm.DB { return db.Order("meal_type ASC") }).
		Preload("ActiveDiet.Meals.Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&user, userID).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}
