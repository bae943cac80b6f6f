package services

import (
	"errors"
	"testing"

	"github.com/agenciadecir/gympro/models"
)

func TestCreateDietDerivesTotalsFromItems(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "ledger@test.com")
	svc := NewLedgerService(db, nil)

	diet, err := svc.CreateDiet(user.ID, CreateDietInput{
		Name: "Bulking",
		Meals: []MealInput{
			{
				MealType: "breakfast",
				// Payload macros must be ignored for itemized meals.
				Calories: 9999,
				Items: []MealItemInput{
					{Name: "oats", Calories: 250, Protein: 15},
					{Name: "eggs", Calories: 200, Protein: 10},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateDiet: %v", err)
	}

	if got := diet.Meals[0].Calories; got != 450 {
		t.Errorf("meal calories = %v, want 450", got)
	}
	if got := diet.Meals[0].Protein; got != 25 {
		t.Errorf("meal protein = %v, want 25", got)
	}
	if diet.TotalCalories != 450 || diet.TotalProtein != 25 {
		t.Errorf("diet totals = %v/%v, want 450/25", diet.TotalCalories, diet.TotalProtein)
	}
	if !diet.IsActive {
		t.Error("newly created diet should be active")
	}
}

func TestAddAndDeleteMealItemRecomputesTotals(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "ledger@test.com")
	svc := NewLedgerService(db, nil)

	diet, err := svc.CreateDiet(user.ID, CreateDietInput{
		Name: "Cutting",
		Meals: []MealInput{
			{
				MealType: "lunch",
				Items: []MealItemInput{
					{Name: "chicken", Calories: 250, Protein: 15},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateDiet: %v", err)
	}
	mealID := diet.Meals[0].ID

	secondItem, err := svc.AddMealItem(user.ID, AddItemInput{
		MealID: mealID, Name: "rice", Calories: 200, Protein: 10,
	})
	if err != nil {
		t.Fatalf("AddMealItem: %v", err)
	}
	if _, err := svc.AddMealItem(user.ID, AddItemInput{
		MealID: mealID, Name: "avocado", Calories: 200, Protein: 10,
	}); err != nil {
		t.Fatalf("AddMealItem: %v", err)
	}

	diet, err = svc.GetDiet(user.ID, diet.ID)
	if err != nil {
		t.Fatalf("GetDiet: %v", err)
	}
	if diet.Meals[0].Calories != 650 || diet.Meals[0].Protein != 35 {
		t.Errorf("after add: meal = %v cal / %v protein, want 650/35",
			diet.Meals[0].Calories, diet.Meals[0].Protein)
	}
	if diet.TotalCalories != 650 || diet.TotalProtein != 35 {
		t.Errorf("after add: diet = %v cal / %v protein, want 650/35",
			diet.TotalCalories, diet.TotalProtein)
	}

	if err := svc.DeleteMealItem(user.ID, secondItem.ID); err != nil {
		t.Fatalf("DeleteMealItem: %v", err)
	}

	diet, err = svc.GetDiet(user.ID, diet.ID)
	if err != nil {
		t.Fatalf("GetDiet: %v", err)
	}
	if diet.Meals[0].Calories != 450 || diet.Meals[0].Protein != 25 {
		t.Errorf("after delete: meal = %v cal / %v protein, want 450/25",
			diet.Meals[0].Calories, diet.Meals[0].Protein)
	}
	if diet.TotalCalories != 450 || diet.TotalProtein != 25 {
		t.Errorf("after delete: diet = %v cal / %v protein, want 450/25",
			diet.TotalCalories, diet.TotalProtein)
	}
}

func TestDietTotalsSpanMeals(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "ledger@test.com")
	svc := NewLedgerService(db, nil)

	diet, err := svc.CreateDiet(user.ID, CreateDietInput{
		Name: "Mixed",
		Meals: []MealInput{
			{MealType: "breakfast", Description: "toast", Calories: 300, Protein: 12, Fat: 8},
			{MealType: "dinner", Items: []MealItemInput{
				{Name: "salmon", Calories: 400, Protein: 30, Fat: 20},
			}},
		},
	})
	if err != nil {
		t.Fatalf("CreateDiet: %v", err)
	}

	if diet.TotalCalories != 700 || diet.TotalProtein != 42 || diet.TotalFat != 28 {
		t.Errorf("diet totals = %v/%v/%v, want 700/42/28",
			diet.TotalCalories, diet.TotalProtein, diet.TotalFat)
	}
}

func TestUpsertMealByDescription(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "ledger@test.com")
	svc := NewLedgerService(db, nil)

	diet, err := svc.CreateDiet(user.ID, CreateDietInput{Name: "Plan"})
	if err != nil {
		t.Fatalf("CreateDiet: %v", err)
	}

	first, err := svc.UpsertMealByDescription(user.ID, UpsertMealInput{
		DietID: diet.ID, MealType: "breakfast",
		Description: "oatmeal with banana", Calories: 350, Protein: 12,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := svc.UpsertMealByDescription(user.ID, UpsertMealInput{
		DietID: diet.ID, MealType: "breakfast",
		Description: "eggs and toast", Calories: 420, Protein: 24,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("upsert created a second breakfast: ids %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Meal{}).Where("diet_id = ? AND meal_type = ?", diet.ID, "breakfast").Count(&count)
	if count != 1 {
		t.Errorf("breakfast meal count = %d, want 1", count)
	}

	diet, err = svc.GetDiet(user.ID, diet.ID)
	if err != nil {
		t.Fatalf("GetDiet: %v", err)
	}
	if diet.TotalCalories != 420 || diet.TotalProtein != 24 {
		t.Errorf("diet totals = %v/%v, want 420/24", diet.TotalCalories, diet.TotalProtein)
	}
}

func TestMealItemDefaults(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "ledger@test.com")
	svc := NewLedgerService(db, nil)

	diet, err := svc.CreateDiet(user.ID, CreateDietInput{
		Name:  "Plan",
		Meals: []MealInput{{MealType: "snack"}},
	})
	if err != nil {
		t.Fatalf("CreateDiet: %v", err)
	}

	item, err := svc.AddMealItem(user.ID, AddItemInput{
		MealID: diet.Meals[0].ID, Name: "almonds", Calories: 170,
	})
	if err != nil {
		t.Fatalf("AddMealItem: %v", err)
	}
	if item.Quantity != 100 {
		t.Errorf("quantity = %v, want default 100", item.Quantity)
	}
	if item.Unit != "g" {
		t.Errorf("unit = %q, want default g", item.Unit)
	}
}

func TestLedgerOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@test.com")
	intruder := newTestUser(t, db, "intruder@test.com")
	svc := NewLedgerService(db, nil)

	diet, err := svc.CreateDiet(owner.ID, CreateDietInput{
		Name:  "Private",
		Meals: []MealInput{{MealType: "lunch"}},
	})
	if err != nil {
		t.Fatalf("CreateDiet: %v", err)
	}

	if _, err := svc.GetDiet(intruder.ID, diet.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDiet as intruder = %v, want ErrNotFound", err)
	}
	if _, err := svc.AddMealItem(intruder.ID, AddItemInput{
		MealID: diet.Meals[0].ID, Name: "steak", Calories: 500,
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddMealItem as intruder = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteDiet(intruder.ID, diet.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteDiet as intruder = %v, want ErrNotFound", err)
	}

	// Owner is unaffected.
	if _, err := svc.GetDiet(owner.ID, diet.ID); err != nil {
		t.Errorf("GetDiet as owner: %v", err)
	}
}

func TestDeleteDietClearsActivePointer(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "ledger@test.com")
	svc := NewLedgerService(db, nil)

	diet, err := svc.CreateDiet(user.ID, CreateDietInput{Name: "Plan"})
	if err != nil {
		t.Fatalf("CreateDiet: %v", err)
	}

	var u models.User
	if err := db.First(&u, user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if u.ActiveDietID == nil || *u.ActiveDietID != diet.ID {
		t.Fatalf("active diet pointer = %v, want %d", u.ActiveDietID, diet.ID)
	}

	if err := svc.DeleteDiet(user.ID, diet.ID); err != nil {
		t.Fatalf("DeleteDiet: %v", err)
	}

	if err := db.First(&u, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if u.ActiveDietID != nil {
		t.Errorf("active diet pointer = %d, want nil", *u.ActiveDietID)
	}
	var count int64
	db.Model(&models.Meal{}).Where("diet_id = ?", diet.ID).Count(&count)
	if count != 0 {
		t.Errorf("orphan meals left behind: %d", count)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "ledger@test.com")
	svc := NewLedgerService(db, nil)

	diet, err := svc.CreateDiet(user.ID, CreateDietInput{
		Name: "Plan",
		Meals: []MealInput{{MealType: "lunch", Items: []MealItemInput{
			{Name: "pasta", Calories: 600, Protein: 20},
		}}},
	})
	if err != nil {
		t.Fatalf("CreateDiet: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.RecomputeMealTotals(db, diet.Meals[0].ID); err != nil {
			t.Fatalf("RecomputeMealTotals: %v", err)
		}
		if err := svc.RecomputeDietTotals(db, diet.ID); err != nil {
			t.Fatalf("RecomputeDietTotals: %v", err)
		}
	}

	diet, err = svc.GetDiet(user.ID, diet.ID)
	if err != nil {
		t.Fatalf("GetDiet: %v", err)
	}
	if diet.TotalCalories != 600 || diet.TotalProtein != 20 {
		t.Errorf("diet totals = %v/%v, want 600/20", diet.TotalCalories, diet.TotalProtein)
	}
}
