package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/FitMentor/fitmentor-backend/models"
)

var testProfile = models.ProfileRequest{
	Weight: 70, Height: 175, Age: 30,
	Gender: "male", ActivityLevel: "moderate", FitnessGoal: "muscle gain",
	DietaryPreferences: "balanced", HealthRestrictions: "none",
}

// planUpstream fakes the chat-completions API. Each section prompt gets
// its own canned reply; an empty reply means "fail with 500".
func planUpstream(t *testing.T, workoutReply, mealReply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding upstream request: %v", err)
		}
		prompt := req.Messages[0].Content

		reply := mealReply
		if strings.Contains(prompt, "workout plan") {
			reply = workoutReply
		}
		if reply == "" {
			http.Error(w, "upstream unavailable", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(chatCompletion(reply))
	}))
}

func newTestPlanner(ts *httptest.Server) *PlannerService {
	return NewPlannerService(NewOpenRouterService("test-key", ts.URL, "", time.Second))
}

const workoutReply = `{
	"Sunday": [{"exercise_name": "Yoga", "sets": 1, "reps": 1, "duration_minutes": 30, "intensity_level": "low", "equipment_required": "mat"}],
	"Monday": [{"exercise_name": "Push-ups", "sets": 3, "reps": 12, "duration_minutes": 10, "intensity_level": "moderate", "equipment_required": "none"}]
}`

const mealReply = `{
	"Monday": {
		"breakfast": {"meal": "Oatmeal", "protein_g": 30, "carbs_g": 45, "fats_g": 15, "calories": 420},
		"lunch": {"meal": "Chicken bowl", "calories": 650},
		"dinner": {"meal": "Salmon and rice", "calories": 600},
		"snacks": [{"meal": "Greek yogurt", "calories": 150}]
	}
}`

func TestGeneratePlanBothSectionsFromAI(t *testing.T) {
	ts := planUpstream(t, workoutReply, mealReply)
	defer ts.Close()

	plan, sources := newTestPlanner(ts).GeneratePlan(context.Background(), testProfile)
	if !sources.WorkoutsFromAI || !sources.MealsFromAI {
		t.Fatalf("sources = %+v, want both from AI", sources)
	}
	// Days come back in week order regardless of JSON key order.
	if len(plan.Workouts) != 2 || plan.Workouts[0].Day != "Monday" || plan.Workouts[1].Day != "Sunday" {
		t.Errorf("workout days out of order: %+v", plan.Workouts)
	}
	if plan.Workouts[0].Exercises[0].ExerciseName != "Push-ups" {
		t.Errorf("unexpected exercise: %+v", plan.Workouts[0].Exercises[0])
	}
	if len(plan.Meals) != 1 || plan.Meals[0].Breakfast.Meal != "Oatmeal" {
		t.Errorf("unexpected meals: %+v", plan.Meals)
	}
	if len(plan.Meals[0].Snacks) != 1 {
		t.Errorf("snacks not carried through: %+v", plan.Meals[0])
	}
}

func TestGeneratePlanWorkoutFailureUsesFallback(t *testing.T) {
	ts := planUpstream(t, "", mealReply)
	defer ts.Close()

	plan, sources := newTestPlanner(ts).GeneratePlan(context.Background(), testProfile)
	if sources.WorkoutsFromAI {
		t.Error("workouts should not be marked AI-generated after a failure")
	}
	if !sources.MealsFromAI {
		t.Error("meal section should be unaffected by the workout failure")
	}
	if len(plan.Workouts) != 7 {
		t.Errorf("fallback workouts cover %d days, want 7", len(plan.Workouts))
	}
	if plan.Meals[0].Breakfast.Meal != "Oatmeal" {
		t.Errorf("meals should still come from AI: %+v", plan.Meals[0])
	}
}

func TestGeneratePlanMalformedMealJSONUsesFallback(t *testing.T) {
	ts := planUpstream(t, workoutReply, "I could not produce a plan today.")
	defer ts.Close()

	plan, sources := newTestPlanner(ts).GeneratePlan(context.Background(), testProfile)
	if sources.MealsFromAI {
		t.Error("malformed meal JSON should fall back")
	}
	if len(plan.Meals) != 7 {
		t.Errorf("fallback meals cover %d days, want 7", len(plan.Meals))
	}
	for _, day := range plan.Meals {
		if day.Breakfast.Calories <= 0 {
			t.Errorf("fallback breakfast for %s has no calories", day.Day)
		}
	}
}

func TestGeneratePlanTotalFailureStillComplete(t *testing.T) {
	ts := planUpstream(t, "", "")
	defer ts.Close()

	plan, sources := newTestPlanner(ts).GeneratePlan(context.Background(), testProfile)
	if sources.WorkoutsFromAI || sources.MealsFromAI {
		t.Fatalf("sources = %+v, want none from AI", sources)
	}
	if len(plan.Workouts) != 7 || len(plan.Meals) != 7 {
		t.Errorf("plan has %d workout days and %d meal days, want 7 each", len(plan.Workouts), len(plan.Meals))
	}
	if len(plan.Notifications) == 0 || len(plan.FitnessTips) != 7 {
		t.Errorf("static sections missing: %d notifications, %d tips", len(plan.Notifications), len(plan.FitnessTips))
	}
	if plan.WeeklyChallenge.Title == "" || plan.TrackingMetrics.Steps == "" {
		t.Error("challenge or tracking metrics not populated")
	}
	if plan.UserProfile.BMI != 22.86 {
		t.Errorf("profile BMI = %g, want 22.86", plan.UserProfile.BMI)
	}
}

func TestFallbackMealsScaleToTargets(t *testing.T) {
	meals := FallbackMeals(2000, models.Macros{Protein: 150, Carbs: 225, Fats: 55})
	if len(meals) != 7 {
		t.Fatalf("got %d days, want 7", len(meals))
	}
	day := meals[0]
	total := day.Breakfast.Calories + day.Lunch.Calories + day.Dinner.Calories
	for _, s := range day.Snacks {
		total += s.Calories
	}
	if total < 1800 || total > 2200 {
		t.Errorf("fallback day totals %g kcal, want near 2000", total)
	}
}
