package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/FitMentor/fitmentor-backend/models"
)

// PlannerService assembles the weekly plan: two concurrent AI calls for
// the workout and meal sections, static content for the rest. A failed
// or malformed AI section is replaced by its fallback without affecting
// the other one.
type PlannerService struct {
	chat *OpenRouterService
}

// PlanSources records which sections actually came from the AI.
type PlanSources struct {
	WorkoutsFromAI bool
	MealsFromAI    bool
}

func NewPlannerService(chat *OpenRouterService) *PlannerService {
	return &PlannerService{chat: chat}
}

// GeneratePlan builds the complete plan for a validated profile.
func (ps *PlannerService) GeneratePlan(ctx context.Context, req models.ProfileRequest) (*models.Plan, PlanSources) {
	profile := BuildUserProfile(req)
	userContext := buildUserContext(req, profile)

	var (
		workouts []models.DayWorkout
		meals    []models.DayMeals
		sources  PlanSources
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result, err := ps.generateWorkouts(ctx, userContext, req)
		if err != nil {
			log.Printf("Warning: AI workout generation failed (%v), using fallback", err)
			workouts = FallbackWorkouts()
			return
		}
		workouts = result
		sources.WorkoutsFromAI = true
	}()
	go func() {
		defer wg.Done()
		result, err := ps.generateMeals(ctx, userContext, req, profile)
		if err != nil {
			log.Printf("Warning: AI meal generation failed (%v), using fallback", err)
			meals = FallbackMeals(profile.DailyCalories, profile.Macros)
			return
		}
		meals = result
		sources.MealsFromAI = true
	}()
	wg.Wait()

	return &models.Plan{
		UserProfile:     profile,
		Workouts:        workouts,
		Meals:           meals,
		TrackingMetrics: BuildTrackingMetrics(req),
		Notifications:   FallbackNotifications(),
		WeeklyChallenge: FallbackChallenge(req.FitnessGoal),
		FitnessTips:     FallbackTips(),
	}, sources
}

func buildUserContext(req models.ProfileRequest, profile models.UserProfile) string {
	return fmt.Sprintf(`User Profile:
- Weight: %gkg, Height: %gcm, Age: %d, Gender: %s
- BMI: %g
- Activity Level: %s
- Fitness Goal: %s
- Dietary Preferences: %s
- Health Restrictions: %s
- Daily Calories: %d kcal
- Daily Macros: Protein %dg, Carbs %dg, Fats %dg
`,
		req.Weight, req.Height, req.Age, req.Gender,
		profile.BMI,
		req.ActivityLevel,
		req.FitnessGoal,
		req.DietaryPreferences,
		req.HealthRestrictions,
		profile.DailyCalories,
		profile.Macros.Protein, profile.Macros.Carbs, profile.Macros.Fats,
	)
}

func buildWorkoutPrompt(userContext string, req models.ProfileRequest) string {
	return fmt.Sprintf(`%s
Create 7-day workout plan. Return ONLY valid JSON:

{
    "Monday": [{"exercise_name": "name", "sets": 3, "reps": 12, "duration_minutes": 5, "intensity_level": "moderate", "equipment_required": "dumbbells"}],
    "Tuesday": [...],
    "Wednesday": [...],
    "Thursday": [...],
    "Friday": [...],
    "Saturday": [...],
    "Sunday": [...]
}

Rules:
- 4-5 exercises per day for goal: %s
- Include warm-up, main, cool-down
- Respect: %s
- Return ONLY JSON, no markdown.`, userContext, req.FitnessGoal, req.HealthRestrictions)
}

func buildMealPrompt(userContext string, req models.ProfileRequest, profile models.UserProfile) string {
	return fmt.Sprintf(`%s
Create 7-day meal plan. Return ONLY valid JSON with this structure:
{"Monday": {"breakfast": {"meal": "name", "protein_g": 30, "carbs_g": 45, "fats_g": 15, "calories": 420}, "lunch": {}, "dinner": {}}, "Tuesday": {}, "Wednesday": {}, "Thursday": {}, "Friday": {}, "Saturday": {}, "Sunday": {}}

Diet: %s. Target: Protein %dg, Carbs %dg, Fats %dg. Calories: ~%d kcal/day. Return ONLY JSON, no markdown.`,
		userContext, req.DietaryPreferences,
		profile.Macros.Protein, profile.Macros.Carbs, profile.Macros.Fats,
		profile.DailyCalories)
}

func (ps *PlannerService) generateWorkouts(ctx context.Context, userContext string, req models.ProfileRequest) ([]models.DayWorkout, error) {
	response, err := ps.chat.Prompt(ctx, buildWorkoutPrompt(userContext, req))
	if err != nil {
		return nil, err
	}

	var byDay map[string][]models.Exercise
	if err := json.Unmarshal([]byte(response), &byDay); err != nil {
		return nil, fmt.Errorf("error parsing workout JSON: %w", err)
	}

	workouts := make([]models.DayWorkout, 0, len(weekDays))
	for _, day := range weekDays {
		exercises, ok := byDay[day]
		if !ok || len(exercises) == 0 {
			continue
		}
		workouts = append(workouts, models.DayWorkout{Day: day, Exercises: exercises})
	}
	if len(workouts) == 0 {
		return nil, fmt.Errorf("workout response contained no known days")
	}
	return workouts, nil
}

func (ps *PlannerService) generateMeals(ctx context.Context, userContext string, req models.ProfileRequest, profile models.UserProfile) ([]models.DayMeals, error) {
	response, err := ps.chat.Prompt(ctx, buildMealPrompt(userContext, req, profile))
	if err != nil {
		return nil, err
	}

	var byDay map[string]struct {
		Breakfast models.Meal   `json:"breakfast"`
		Lunch     models.Meal   `json:"lunch"`
		Dinner    models.Meal   `json:"dinner"`
		Snacks    []models.Meal `json:"snacks"`
	}
	if err := json.Unmarshal([]byte(response), &byDay); err != nil {
		return nil, fmt.Errorf("error parsing meal JSON: %w", err)
	}

	meals := make([]models.DayMeals, 0, len(weekDays))
	for _, day := range weekDays {
		dayMeals, ok := byDay[day]
		if !ok || dayMeals.Breakfast.Meal == "" {
			continue
		}
		meals = append(meals, models.DayMeals{
			Day:       day,
			Breakfast: dayMeals.Breakfast,
			Lunch:     dayMeals.Lunch,
			Dinner:    dayMeals.Dinner,
			Snacks:    dayMeals.Snacks,
		})
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("meal response contained no known days")
	}
	return meals, nil
}
