package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agenciadecir/gympro/models"
)

// AIService wraps the chat-completion API used for macro estimation, diet
// review, recipe generation and routine analysis. Its output is untrusted
// input: missing fields default to zero and unparseable payloads surface as
// ErrAnalysisFailed carrying the raw upstream text, never as fabricated
// values.
type AIService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewAIService(baseURL, apiKey, model string) *AIService {
	return &AIService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type MacroEstimate struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Summary  string  `json:"summary"`
}

type DietAnalysis struct {
	Summary         string   `json:"summary"`
	MacroAnalysis   string   `json:"macroAnalysis"`
	QualityScore    float64  `json:"qualityScore"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Recommendations string   `json:"recommendations"`
}

type GeneratedRecipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     int      `json:"prepTime"`
	CookTime     int      `json:"cookTime"`
	Servings     int      `json:"servings"`
	Calories     float64  `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	Tips         string   `json:"tips"`
}

type RecipeRequest struct {
	Ingredients         []string `json:"ingredients"`
	MealType            string   `json:"mealType"`
	DietaryRestrictions string   `json:"dietaryRestrictions"`
	Calories            float64  `json:"calories"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *AIService) chatComplete(ctx context.Context, system, user string) (string, error) {
	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call completion API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API error %d: %s", resp.StatusCode, string(body))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("failed to parse completion JSON: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion response", ErrAnalysisFailed)
	}
	return cr.Choices[0].Message.Content, nil
}

// cleanJSONResponse strips markdown code fences some models wrap around JSON.
func cleanJSONResponse(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

const mealAnalyzerSystemPrompt = `You are an expert nutritionist specialized in meal analysis and macronutrient estimation. Analyze a free-text meal description and estimate its nutritional values.

Rules:
1. Consider every food mentioned and its approximate quantity
2. Assume typical cooking methods when unspecified
3. Be realistic about standard portions

Always respond with JSON in exactly this structure:
{"calories": number, "protein": grams, "carbs": grams, "fat": grams, "fiber": grams, "summary": "short summary of what was analyzed"}

Respond ONLY with the JSON, no extra text and no markdown.`

func (s *AIService) AnalyzeMeal(ctx context.Context, description, mealType string) (*MacroEstimate, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrInvalidInput
	}

	prompt := fmt.Sprintf("Analyze this meal%s and estimate its macros:\n\n%q", mealTypeSuffix(mealType), description)
	raw, err := s.chatComplete(ctx, mealAnalyzerSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var est MacroEstimate
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &est); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisFailed, raw)
	}
	return &est, nil
}

func mealTypeSuffix(mealType string) string {
	if mealType == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", mealType)
}

const dietAnalyzerSystemPrompt = `You are an expert sports nutritionist. Analyze a person's full daily diet and provide a general summary, a macronutrient balance analysis, a nutritional quality evaluation and concrete recommendations (especially for hypertrophy).

Always respond with JSON in exactly this structure:
{"summary": "...", "macroAnalysis": "...", "qualityScore": 1-10, "strengths": ["..."], "improvements": ["..."], "recommendations": "..."}

Respond ONLY with the JSON, no markdown.`

func (s *AIService) AnalyzeDiet(ctx context.Context, meals map[string]string) (*DietAnalysis, error) {
	var lines []string
	for mealType, desc := range meals {
		if strings.TrimSpace(desc) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", mealType, desc))
	}
	if len(lines) == 0 {
		return nil, ErrInvalidInput
	}

	prompt := "Analyze this complete daily diet:\n\n" + strings.Join(lines, "\n")
	raw, err := s.chatComplete(ctx, dietAnalyzerSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var analysis DietAnalysis
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisFailed, raw)
	}
	return &analysis, nil
}

const recipeGeneratorSystemPrompt = `You are a professional chef and nutritionist specialized in healthy, athletic cooking. Create a recipe using EXCLUSIVELY the ingredients the user provides (salt, pepper and cooking oil may be assumed).

Always respond with JSON in exactly this structure:
{"name": "...", "description": "...", "ingredients": ["ingredient with quantity"], "instructions": ["step"], "prepTime": minutes, "cookTime": minutes, "servings": n, "calories": per_serving, "protein": grams, "carbs": grams, "fat": grams, "tips": "..."}

Respond ONLY with the JSON, no extra text.`

func (s *AIService) GenerateRecipe(ctx context.Context, in RecipeRequest) (*GeneratedRecipe, error) {
	if len(in.Ingredients) == 0 {
		return nil, ErrInvalidInput
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a recipe%s using EXCLUSIVELY these ingredients:\n", mealTypeSuffix(in.MealType))
	for _, ing := range in.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}
	if in.DietaryRestrictions != "" {
		fmt.Fprintf(&b, "\nDietary restrictions: %s\n", in.DietaryRestrictions)
	}
	if in.Calories > 0 {
		fmt.Fprintf(&b, "Target calories per serving: around %.0f kcal\n", in.Calories)
	}

	raw, err := s.chatComplete(ctx, recipeGeneratorSystemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &recipe); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisFailed, raw)
	}
	return &recipe, nil
}

const routineAnalysisSystemPrompt = `You are a professional personal trainer with 15+ years of experience in bodybuilding, muscular hypertrophy and sports nutrition. Analyze the given training routine: weekly volume per muscle group, frequency distribution, exercise selection (compound vs isolation), progression, muscle balance, injury risk and concrete improvements.

Respond with a professional but approachable tone, structured in clear sections using Markdown.`

// AnalyzeRoutine returns free-form markdown, not JSON; the caller stores it on
// the routine.
func (s *AIService) AnalyzeRoutine(ctx context.Context, routine *models.Routine, userGoal, userDiet string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this training routine:\n\n**Routine:** %s\n", routine.Name)
	if routine.Description != "" {
		fmt.Fprintf(&b, "**Description:** %s\n", routine.Description)
	}
	b.WriteString("\n**Training days:**\n")
	for _, day := range routine.Days {
		fmt.Fprintf(&b, "\n### %s\n", day.Name)
		for _, ex := range day.Exercises {
			fmt.Fprintf(&b, "- %s", ex.Name)
			if ex.MuscleGroup != "" {
				fmt.Fprintf(&b, " (%s)", ex.MuscleGroup)
			}
			fmt.Fprintf(&b, ": %d sets x %s reps", ex.Sets, ex.Reps)
			if ex.Weight > 0 {
				fmt.Fprintf(&b, " @ %.1f%s", ex.Weight, ex.WeightUnit)
			}
			b.WriteString("\n")
		}
	}
	if userGoal != "" {
		fmt.Fprintf(&b, "\n**User goal:** %s\n", userGoal)
	}
	if userDiet != "" {
		fmt.Fprintf(&b, "**Current diet:** %s\n", userDiet)
	}

	analysis, err := s.chatComplete(ctx, routineAnalysisSystemPrompt, b.String())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(analysis) == "" {
		return "", fmt.Errorf("%w: empty analysis", ErrAnalysisFailed)
	}
	return analysis, nil
}
