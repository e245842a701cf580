package services

import (
	"fmt"
	"strings"

	"github.com/FitMentor/fitmentor-backend/models"
)

// weekDays fixes the day ordering for every weekly section.
var weekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday",
	"Friday", "Saturday", "Sunday",
}

// FallbackWorkouts is the static workout plan substituted when the AI
// call fails or returns unusable JSON.
func FallbackWorkouts() []models.DayWorkout {
	return []models.DayWorkout{
		{Day: "Monday", Exercises: []models.Exercise{
			{Phase: "Warm-up", ExerciseName: "Dynamic Stretching", Sets: 1, Reps: 10, DurationMinutes: 5, IntensityLevel: "easy", EquipmentRequired: "none", Alternative: "Light cardio"},
			{Phase: "Main Workout", ExerciseName: "Full Body Strength Training", Sets: 3, Reps: 12, DurationMinutes: 30, IntensityLevel: "moderate", EquipmentRequired: "dumbbells", Alternative: "Bodyweight exercises"},
			{Phase: "Cool-down", ExerciseName: "Stretching", Sets: 1, Reps: 1, DurationMinutes: 5, IntensityLevel: "easy", EquipmentRequired: "none", Alternative: "Walking"},
		}},
		{Day: "Tuesday", Exercises: []models.Exercise{
			{Phase: "Cardio", ExerciseName: "Cardio Session", Sets: 1, Reps: 1, DurationMinutes: 30, IntensityLevel: "moderate", EquipmentRequired: "none", Alternative: "Walking"},
		}},
		{Day: "Wednesday", Exercises: []models.Exercise{
			{Phase: "Main Workout", ExerciseName: "Strength Training", Sets: 3, Reps: 12, DurationMinutes: 30, IntensityLevel: "moderate", EquipmentRequired: "dumbbells", Alternative: "Bodyweight"},
		}},
		{Day: "Thursday", Exercises: []models.Exercise{
			{Phase: "Rest", ExerciseName: "Active Recovery", Sets: 1, Reps: 1, DurationMinutes: 20, IntensityLevel: "easy", EquipmentRequired: "none", Alternative: "Yoga"},
		}},
		{Day: "Friday", Exercises: []models.Exercise{
			{Phase: "Main Workout", ExerciseName: "Full Body Workout", Sets: 3, Reps: 12, DurationMinutes: 30, IntensityLevel: "moderate", EquipmentRequired: "dumbbells", Alternative: "Bodyweight"},
		}},
		{Day: "Saturday", Exercises: []models.Exercise{
			{Phase: "Cardio", ExerciseName: "HIIT Session", Sets: 1, Reps: 1, DurationMinutes: 25, IntensityLevel: "hard", EquipmentRequired: "none", Alternative: "Jogging"},
		}},
		{Day: "Sunday", Exercises: []models.Exercise{
			{Phase: "Rest", ExerciseName: "Rest Day", Sets: 1, Reps: 1, DurationMinutes: 20, IntensityLevel: "easy", EquipmentRequired: "none", Alternative: "Light walk"},
		}},
	}
}

// FallbackMeals builds a static meal plan scaled to the profile's daily
// calorie and macro targets: one template day replicated across the week.
func FallbackMeals(calories int, macros models.Macros) []models.DayMeals {
	c := float64(calories)
	p := float64(macros.Protein)
	cb := float64(macros.Carbs)
	f := float64(macros.Fats)

	breakfast := models.Meal{
		Meal:         "Protein Oatmeal",
		Description:  "Oats with protein powder and berries",
		ProteinG:     float64(int(p * 0.25)),
		CarbsG:       float64(int(cb * 0.30)),
		FatsG:        float64(int(f * 0.25)),
		Calories:     float64(int(c * 0.25)),
		Alternatives: []string{"Greek yogurt parfait", "Egg white omelet"},
	}
	lunch := models.Meal{
		Meal:         "Chicken and Rice Bowl",
		Description:  "Grilled chicken with brown rice and vegetables",
		ProteinG:     float64(int(p * 0.35)),
		CarbsG:       float64(int(cb * 0.35)),
		FatsG:        float64(int(f * 0.35)),
		Calories:     float64(int(c * 0.35)),
		Alternatives: []string{"Turkey wrap", "Salmon salad"},
	}
	dinner := models.Meal{
		Meal:         "Lean Protein Dinner",
		Description:  "Lean meat with vegetables and complex carbs",
		ProteinG:     float64(int(p * 0.30)),
		CarbsG:       float64(int(cb * 0.25)),
		FatsG:        float64(int(f * 0.30)),
		Calories:     float64(int(c * 0.30)),
		Alternatives: []string{"Fish with quinoa", "Tofu stir-fry"},
	}
	snacks := []models.Meal{
		{
			Meal:         "Protein Snack",
			Description:  "Greek yogurt with nuts",
			ProteinG:     float64(int(p * 0.05)),
			CarbsG:       float64(int(cb * 0.05)),
			FatsG:        float64(int(f * 0.075)),
			Calories:     float64(int(c * 0.05)),
			Alternatives: []string{"Protein bar", "Cottage cheese"},
		},
		{
			Meal:         "Energy Snack",
			Description:  "Fruit with nut butter",
			ProteinG:     float64(int(p * 0.05)),
			CarbsG:       float64(int(cb * 0.05)),
			FatsG:        float64(int(f * 0.075)),
			Calories:     float64(int(c * 0.05)),
			Alternatives: []string{"Trail mix", "Rice cakes"},
		},
	}

	meals := make([]models.DayMeals, 0, len(weekDays))
	for _, day := range weekDays {
		meals = append(meals, models.DayMeals{
			Day:       day,
			Breakfast: breakfast,
			Lunch:     lunch,
			Dinner:    dinner,
			Snacks:    snacks,
		})
	}
	return meals
}

// FallbackNotifications is the static daily reminder schedule.
func FallbackNotifications() []models.Notification {
	return []models.Notification{
		{Time: "07:00", Type: "workout", Message: "Time for your workout!"},
		{Time: "08:00", Type: "breakfast", Message: "Breakfast time!"},
		{Time: "12:30", Type: "lunch", Message: "Lunch break!"},
		{Time: "15:00", Type: "snack", Message: "Healthy snack time!"},
		{Time: "19:00", Type: "dinner", Message: "Dinner time!"},
		{Time: "22:00", Type: "sleep_prep", Message: "Time to wind down!"},
	}
}

// FallbackChallenge builds the weekly challenge for a fitness goal.
func FallbackChallenge(goal string) models.WeeklyChallenge {
	return models.WeeklyChallenge{
		Title:       fmt.Sprintf("%s Challenge", titleCase(goal)),
		Description: fmt.Sprintf("Stay consistent with your %s program this week", goal),
		Goal:        "Complete all workouts and track your meals",
		Reward:      "Improved fitness and progress toward your goal",
	}
}

// FallbackTips returns one tip per day of the week.
func FallbackTips() []models.FitnessTip {
	tips := []string{
		"Stay consistent with your workouts",
		"Proper nutrition is key to results",
		"Rest and recovery are essential",
		"Focus on form over weight",
		"Stay hydrated throughout the day",
		"Get adequate sleep for recovery",
		"Reflect on your weekly progress",
	}
	out := make([]models.FitnessTip, 0, len(weekDays))
	for i, day := range weekDays {
		out = append(out, models.FitnessTip{
			Day:        day,
			Tip:        tips[i],
			Motivation: "Keep pushing forward!",
		})
	}
	return out
}

// BuildTrackingMetrics derives the weekly self-tracking suggestions
// from the profile.
func BuildTrackingMetrics(req models.ProfileRequest) models.TrackingMetrics {
	water := 2.0
	if req.Gender == "male" {
		water = 2.5
	}
	steps := 10000
	if req.ActivityLevel == "sedentary" || req.ActivityLevel == "moderate" {
		steps = 8000
	}
	return models.TrackingMetrics{
		Weight:      fmt.Sprintf("%g kg", req.Weight),
		BodyFat:     "Track weekly",
		MuscleMass:  "Track weekly",
		WaterIntake: fmt.Sprintf("%.1f liters/day", water),
		SleepHours:  "7-8 hours/night",
		Steps:       fmt.Sprintf("%d steps/day", steps),
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
