package services

import (
	"errors"
	"time"

	"github.com/agenciadecir/gympro/models"

	"gorm.io/gorm"
)

// LedgerService owns diets, meals and meal items together with their derived
// totals. Every mutation and the recompute of the affected parent chain run
// inside a single transaction, so committed totals always reflect committed
// children and two concurrent writers cannot produce a lost update.
type LedgerService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

func NewLedgerService(db *gorm.DB, hub *RealtimeHub) *LedgerService {
	return &LedgerService{db: db, hub: hub}
}

type MealItemInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

type MealInput struct {
	MealType    string          `json:"mealType"`
	Name        string          `json:"name"`
	Time        string          `json:"time"`
	Description string          `json:"description"`
	Calories    float64         `json:"calories"`
	Protein     float64         `json:"protein"`
	Carbs       float64         `json:"carbs"`
	Fat         float64         `json:"fat"`
	Fiber       float64         `json:"fiber"`
	Items       []MealItemInput `json:"items"`
}

type CreateDietInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	DietType    string      `json:"dietType"`
	Meals       []MealInput `json:"meals"`
}

// UpdateDietInput enumerates every mutable diet field. Totals are absent on
// purpose: they are derived and only the aggregators write them.
type UpdateDietInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	DietType    *string    `json:"dietType"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    *bool      `json:"isActive"`
	IsArchived  *bool      `json:"isArchived"`
}

type UpsertMealInput struct {
	DietID      uint    `json:"dietId"`
	MealType    string  `json:"mealType"`
	Name        string  `json:"name"`
	Time        string  `json:"time"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
}

type AddItemInput struct {
	MealID   uint    `json:"mealId"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *LedgerService) CreateDiet(userID uint, in CreateDietInput) (*models.Diet, error) {
	if in.Name == "" {
		return nil, ErrInvalidInput
	}

	diet := &models.Diet{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		DietType:    in.DietType,
		IsActive:    true,
	}
	if diet.DietType == "" {
		diet.DietType = "training_day"
	}
	for _, m := range in.Meals {
		meal := models.Meal{
			MealType:    m.MealType,
			Name:        m.Name,
			Time:        m.Time,
			Description: m.Description,
			Calories:    m.Calories,
			Protein:     m.Protein,
			Carbs:       m.Carbs,
			Fat:         m.Fat,
			Fiber:       m.Fiber,
		}
		for _, it := range m.Items {
			meal.Items = append(meal.Items, newMealItem(it))
		}
		diet.Meals = append(diet.Meals, meal)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(diet).Error; err != nil {
			return err
		}
		// Totals are derived bottom-up even on create: itemized meals get
		// their macros from the items, not the payload.
		for i := range diet.Meals {
			if len(diet.Meals[i].Items) > 0 {
				if err := s.RecomputeMealTotals(tx, diet.Meals[i].ID); err != nil {
					return err
				}
			}
		}
		if err := s.RecomputeDietTotals(tx, diet.ID); err != nil {
			return err
		}
		return setActiveDietTx(tx, userID, diet.ID)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.GetDiet(userID, diet.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Broadcast(userID, "diet.created", created)
	return created, nil
}

func (s *LedgerService) ListDiets(userID uint, archived bool) ([]models.Diet, error) {
	var diets []models.Diet
	err := s.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("meal_type ASC") }).
		Preload("Meals.Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("user_id = ? AND is_archived = ?", userID, archived).
		Order("created_at DESC").
		Find(&diets).Error
	return diets, err
}

func (s *LedgerService) GetDiet(userID, dietID uint) (*models.Diet, error) {
	var diet models.Diet
	err := s.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("meal_type ASC") }).
		Preload("Meals.Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND user_id = ?", dietID, userID).
		First(&diet).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &diet, nil
}

func (s *LedgerService) UpdateDiet(userID, dietID uint, in UpdateDietInput) (*models.Diet, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var diet models.Diet
		if err := tx.Where("id = ? AND user_id = ?", dietID, userID).First(&diet).Error; err != nil {
			return notFoundOr(err)
		}

		if in.Name != nil {
			diet.Name = *in.Name
		}
		if in.Description != nil {
			diet.Description = *in.Description
		}
		if in.DietType != nil {
			diet.DietType = *in.DietType
		}
		if in.StartDate != nil {
			diet.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			diet.EndDate = in.EndDate
		}
		if err := tx.Save(&diet).Error; err != nil {
			return err
		}

		switch {
		case in.IsArchived != nil && *in.IsArchived:
			return archiveDietTx(tx, userID, dietID)
		case in.IsActive != nil && *in.IsActive:
			return setActiveDietTx(tx, userID, dietID)
		case in.IsActive != nil && !*in.IsActive && diet.IsActive:
			return deactivateDietTx(tx, userID, dietID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetDiet(userID, dietID)
}

func (s *LedgerService) DeleteDiet(userID, dietID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var diet models.Diet
		if err := tx.Where("id = ? AND user_id = ?", dietID, userID).First(&diet).Error; err != nil {
			return notFoundOr(err)
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.ActiveDietID != nil && *user.ActiveDietID == dietID {
			if err := tx.Model(&user).Update("active_diet_id", nil).Error; err != nil {
				return err
			}
		}

		mealIDs := tx.Model(&models.Meal{}).Select("id").Where("diet_id = ?", dietID)
		if err := tx.Where("meal_id IN (?)", mealIDs).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("diet_id = ?", dietID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&diet).Error
	})
}

// UpsertMealByDescription is the aggregate-entry path that bypasses items: the
// macros come from free text (usually an AI estimate) and are written onto the
// meal in place. At most one meal exists per (dietID, mealType); a second
// upsert of the same type updates the existing row.
func (s *LedgerService) UpsertMealByDescription(userID uint, in UpsertMealInput) (*models.Meal, error) {
	if in.DietID == 0 || in.MealType == "" {
		return nil, ErrInvalidInput
	}

	var meal models.Meal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var diet models.Diet
		if err := tx.Where("id = ? AND user_id = ?", in.DietID, userID).First(&diet).Error; err != nil {
			return notFoundOr(err)
		}

		err := tx.Where("diet_id = ? AND meal_type = ?", in.DietID, in.MealType).First(&meal).Error
		switch {
		case err == nil:
			meal.Name = in.Name
			meal.Time = in.Time
			meal.Description = in.Description
			meal.Calories = in.Calories
			meal.Protein = in.Protein
			meal.Carbs = in.Carbs
			meal.Fat = in.Fat
			meal.Fiber = in.Fiber
			if err := tx.Save(&meal).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			meal = models.Meal{
				DietID:      in.DietID,
				MealType:    in.MealType,
				Name:        in.Name,
				Time:        in.Time,
				Description: in.Description,
				Calories:    in.Calories,
				Protein:     in.Protein,
				Carbs:       in.Carbs,
				Fat:         in.Fat,
				Fiber:       in.Fiber,
			}
			if err := tx.Create(&meal).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return s.RecomputeDietTotals(tx, in.DietID)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(userID, "meal.updated", &meal)
	return &meal, nil
}

func newMealItem(in MealItemInput) models.MealItem {
	item := models.MealItem{
		Name:     in.Name,
		Quantity: in.Quantity,
		Unit:     in.Unit,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
		Fiber:    in.Fiber,
	}
	if item.Quantity == 0 {
		item.Quantity = 100
	}
	if item.Unit == "" {
		item.Unit = "g"
	}
	return item
}

func (s *LedgerService) AddMealItem(userID uint, in AddItemInput) (*models.MealItem, error) {
	if in.MealID == 0 || in.Name == "" {
		return nil, ErrInvalidInput
	}

	item := newMealItem(MealItemInput{
		Name:     in.Name,
		Quantity: in.Quantity,
		Unit:     in.Unit,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
		Fiber:    in.Fiber,
	})

	var dietID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meal, err := mealOwnedBy(tx, userID, in.MealID)
		if err != nil {
			return err
		}
		dietID = meal.DietID

		item.MealID = meal.ID
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if err := s.RecomputeMealTotals(tx, meal.ID); err != nil {
			return err
		}
		return s.RecomputeDietTotals(tx, meal.DietID)
	})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(userID, "meal_item.added", map[string]any{"itemId": item.ID, "mealId": item.MealID, "dietId": dietID})
	return &item, nil
}

func (s *LedgerService) DeleteMealItem(userID, itemID uint) error {
	var mealID, dietID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.MealItem
		if err := tx.First(&item, itemID).Error; err != nil {
			return notFoundOr(err)
		}
		meal, err := mealOwnedBy(tx, userID, item.MealID)
		if err != nil {
			return err
		}
		mealID, dietID = meal.ID, meal.DietID

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		// Recompute from the remaining items, never incremental subtraction.
		if err := s.RecomputeMealTotals(tx, meal.ID); err != nil {
			return err
		}
		return s.RecomputeDietTotals(tx, meal.DietID)
	})
	if err != nil {
		return err
	}

	s.hub.Broadcast(userID, "meal_item.deleted", map[string]any{"itemId": itemID, "mealId": mealID, "dietId": dietID})
	return nil
}

// mealOwnedBy resolves the ownership chain meal -> diet -> user inside the
// caller's transaction. Both a missing meal and someone else's meal come back
// as ErrNotFound.
func mealOwnedBy(tx *gorm.DB, userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	if err := tx.First(&meal, mealID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var diet models.Diet
	if err := tx.Where("id = ? AND user_id = ?", meal.DietID, userID).First(&diet).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &meal, nil
}

// RecomputeMealTotals overwrites a meal's macros with the sum over its current
// items. Pure function of the children; idempotent.
func (s *LedgerService) RecomputeMealTotals(tx *gorm.DB, mealID uint) error {
	var items []models.MealItem
	if err := tx.Where("meal_id = ?", mealID).Find(&items).Error; err != nil {
		return err
	}

	var calories, protein, carbs, fat, fiber float64
	for _, it := range items {
		calories += it.Calories
		protein += it.Protein
		carbs += it.Carbs
		fat += it.Fat
		fiber += it.Fiber
	}

	return tx.Model(&models.Meal{}).Where("id = ?", mealID).Updates(map[string]any{
		"calories": calories,
		"protein":  protein,
		"carbs":    carbs,
		"fat":      fat,
		"fiber":    fiber,
	}).Error
}

// RecomputeDietTotals overwrites a diet's rollup with the sum over its current
// meals. Invoked after any meal-level total change, itemized or not.
func (s *LedgerService) RecomputeDietTotals(tx *gorm.DB, dietID uint) error {
	var meals []models.Meal
	if err := tx.Where("diet_id = ?", dietID).Find(&meals).Error; err != nil {
		return err
	}

	var calories, protein, carbs, fat, fiber float64
	for _, m := range meals {
		calories += m.Calories
		protein += m.Protein
		carbs += m.Carbs
		fat += m.Fat
		fiber += m.Fiber
	}

	return tx.Model(&models.Diet{}).Where("id = ?", dietID).Updates(map[string]any{
		"total_calories": calories,
		"total_protein":  protein,
		"total_carbs":    carbs,
		"total_fat":      fat,
		"total_fiber":    fiber,
	}).Error
}
