package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agenciadecir/gympro/models"
)

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnalyzeMealParsesFencedJSON(t *testing.T) {
	srv := chatServer(t, "```json\n{\"calories\": 520, \"protein\": 38, \"carbs\": 45, \"fat\": 18, \"fiber\": 6, \"summary\": \"chicken and rice\"}\n```")
	defer srv.Close()

	svc := NewAIService(srv.URL, "test-key", "test-model")
	est, err := svc.AnalyzeMeal(context.Background(), "chicken breast with rice", "lunch")
	if err != nil {
		t.Fatalf("AnalyzeMeal: %v", err)
	}
	if est.Calories != 520 || est.Protein != 38 {
		t.Errorf("estimate = %v cal / %v protein, want 520/38", est.Calories, est.Protein)
	}
	if est.Summary != "chicken and rice" {
		t.Errorf("summary = %q", est.Summary)
	}
}

func TestAnalyzeMealMissingFieldsDefaultToZero(t *testing.T) {
	srv := chatServer(t, `{"calories": 300}`)
	defer srv.Close()

	svc := NewAIService(srv.URL, "test-key", "test-model")
	est, err := svc.AnalyzeMeal(context.Background(), "black coffee", "")
	if err != nil {
		t.Fatalf("AnalyzeMeal: %v", err)
	}
	if est.Calories != 300 {
		t.Errorf("calories = %v, want 300", est.Calories)
	}
	if est.Protein != 0 || est.Fat != 0 || est.Fiber != 0 {
		t.Errorf("missing macros should be zero, got %+v", est)
	}
}

func TestAnalyzeMealMalformedResponse(t *testing.T) {
	srv := chatServer(t, "Sorry, I cannot help with that.")
	defer srv.Close()

	svc := NewAIService(srv.URL, "test-key", "test-model")
	_, err := svc.AnalyzeMeal(context.Background(), "mystery stew", "")
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("err = %v, want ErrAnalysisFailed", err)
	}
	if !strings.Contains(err.Error(), "Sorry, I cannot help") {
		t.Errorf("error should carry the raw upstream text, got %q", err.Error())
	}
}

func TestAnalyzeMealEmptyDescription(t *testing.T) {
	svc := NewAIService("http://unused", "test-key", "test-model")
	if _, err := svc.AnalyzeMeal(context.Background(), "   ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAnalyzeDiet(t *testing.T) {
	srv := chatServer(t, `{"summary":"balanced","macroAnalysis":"protein is adequate","qualityScore":8,"strengths":["high protein"],"improvements":["more fiber"],"recommendations":"add vegetables"}`)
	defer srv.Close()

	svc := NewAIService(srv.URL, "test-key", "test-model")
	analysis, err := svc.AnalyzeDiet(context.Background(), map[string]string{
		"breakfast": "oats and whey",
		"dinner":    "steak and potatoes",
	})
	if err != nil {
		t.Fatalf("AnalyzeDiet: %v", err)
	}
	if analysis.QualityScore != 8 || len(analysis.Strengths) != 1 {
		t.Errorf("analysis = %+v", analysis)
	}
}

func TestAnalyzeDietRequiresMeals(t *testing.T) {
	svc := NewAIService("http://unused", "test-key", "test-model")
	_, err := svc.AnalyzeDiet(context.Background(), map[string]string{"lunch": "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestGenerateRecipe(t *testing.T) {
	srv := chatServer(t, `{"name":"Chicken rice bowl","description":"quick bowl","ingredients":["200g chicken","150g rice"],"instructions":["cook rice","grill chicken"],"prepTime":10,"cookTime":20,"servings":2,"calories":550,"protein":45,"carbs":60,"fat":12,"tips":"season well"}`)
	defer srv.Close()

	svc := NewAIService(srv.URL, "test-key", "test-model")
	recipe, err := svc.GenerateRecipe(context.Background(), RecipeRequest{
		Ingredients: []string{"chicken", "rice"},
		MealType:    "lunch",
	})
	if err != nil {
		t.Fatalf("GenerateRecipe: %v", err)
	}
	if recipe.Name != "Chicken rice bowl" || len(recipe.Instructions) != 2 {
		t.Errorf("recipe = %+v", recipe)
	}

	if _, err := svc.GenerateRecipe(context.Background(), RecipeRequest{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no ingredients = %v, want ErrInvalidInput", err)
	}
}

func TestAnalyzeRoutineReturnsMarkdown(t *testing.T) {
	srv := chatServer(t, "## Volume\nLooks reasonable for an intermediate.")
	defer srv.Close()

	svc := NewAIService(srv.URL, "test-key", "test-model")
	routine := &models.Routine{
		Name: "Push/Pull",
		Days: []models.WorkoutDay{{
			Name: "Push",
			Exercises: []models.Exercise{
				{Name: "Bench press", MuscleGroup: "chest", Sets: 4, Reps: "8", Weight: 80, WeightUnit: "kg"},
			},
		}},
	}

	analysis, err := svc.AnalyzeRoutine(context.Background(), routine, "hypertrophy", "")
	if err != nil {
		t.Fatalf("AnalyzeRoutine: %v", err)
	}
	if !strings.Contains(analysis, "## Volume") {
		t.Errorf("analysis = %q", analysis)
	}
}

func TestChatCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewAIService(srv.URL, "test-key", "test-model")
	_, err := svc.AnalyzeMeal(context.Background(), "toast", "")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v, want upstream error text", err)
	}
}
