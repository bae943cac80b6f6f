package services

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCreateRecipeAcceptsStringOrArray(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "recipe@test.com")
	svc := NewRecipeService(db)

	recipe, err := svc.CreateRecipe(user.ID, CreateRecipeInput{
		Name:         "Overnight oats",
		Instructions: json.RawMessage(`"mix and refrigerate"`),
		Ingredients:  json.RawMessage(`["oats","milk","honey"]`),
	})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	if recipe.Instructions != "mix and refrigerate" {
		t.Errorf("instructions = %q", recipe.Instructions)
	}
	if recipe.Ingredients != `["oats","milk","honey"]` {
		t.Errorf("ingredients = %q", recipe.Ingredients)
	}
	if recipe.Servings != 1 {
		t.Errorf("servings = %d, want default 1", recipe.Servings)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "recipe@test.com")
	svc := NewRecipeService(db)

	_, err := svc.CreateRecipe(user.ID, CreateRecipeInput{Name: "No content"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSaveGeneratedRecipe(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "recipe@test.com")
	svc := NewRecipeService(db)

	saved, err := svc.SaveGenerated(user.ID, &GeneratedRecipe{
		Name:         "Protein pancakes",
		Ingredients:  []string{"eggs", "oats", "whey"},
		Instructions: []string{"blend", "fry"},
		Calories:     420,
		Protein:      35,
	})
	if err != nil {
		t.Fatalf("SaveGenerated: %v", err)
	}
	if !saved.IsAiGenerated {
		t.Error("IsAiGenerated not set")
	}
	if saved.Servings != 1 {
		t.Errorf("servings = %d, want default 1", saved.Servings)
	}

	var instructions []string
	if err := json.Unmarshal([]byte(saved.Instructions), &instructions); err != nil {
		t.Fatalf("instructions not stored as JSON array: %v", err)
	}
	if len(instructions) != 2 {
		t.Errorf("instructions = %v", instructions)
	}
}

func TestRecipeOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner@test.com")
	intruder := newTestUser(t, db, "intruder@test.com")
	svc := NewRecipeService(db)

	recipe, err := svc.CreateRecipe(owner.ID, CreateRecipeInput{
		Name:         "Secret sauce",
		Instructions: json.RawMessage(`"stir"`),
		Ingredients:  json.RawMessage(`["tomatoes"]`),
	})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	if _, err := svc.GetRecipe(intruder.ID, recipe.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRecipe as intruder = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteRecipe(intruder.ID, recipe.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteRecipe as intruder = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteRecipe(owner.ID, recipe.ID); err != nil {
		t.Errorf("DeleteRecipe as owner: %v", err)
	}
}
