package services

import (
	"math"

	"github.com/FitMentor/fitmentor-backend/models"
)

// Activity multipliers for the Mifflin-St Jeor TDEE estimate. The same
// table is used by the planner and the calculator endpoint.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// CalculateBMI returns body mass index rounded to two decimals.
// Weight in kg, height in cm.
func CalculateBMI(weight, height float64) float64 {
	heightM := height / 100
	return math.Round(weight/(heightM*heightM)*100) / 100
}

// BMICategory maps a BMI value to its category and recommendation.
func BMICategory(bmi float64) (category, recommendation string) {
	switch {
	case bmi < 18.5:
		return "Underweight", "Consider muscle gain program"
	case bmi < 25:
		return "Normal weight", "Maintain your healthy weight"
	case bmi < 30:
		return "Overweight", "Consider weight loss program"
	default:
		return "Obese", "Consult with healthcare provider and consider weight loss program"
	}
}

// CalculateBMR computes basal metabolic rate with the Mifflin-St Jeor
// equation.
func CalculateBMR(weight, height float64, age int, gender string) float64 {
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if gender == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// ActivityMultiplier returns the TDEE multiplier for an activity level,
// defaulting to moderate for unknown values.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return 1.55
}

// GoalAdjustment returns the daily calorie delta applied for a goal.
func GoalAdjustment(goal string) int {
	switch goal {
	case "weight loss":
		return -500
	case "muscle gain":
		return 300
	default:
		return 0
	}
}

// DailyCalories returns the goal-adjusted daily calorie target.
func DailyCalories(weight, height float64, age int, gender, activityLevel, goal string) int {
	bmr := CalculateBMR(weight, height, age, gender)
	tdee := bmr * ActivityMultiplier(activityLevel)
	return int(tdee) + GoalAdjustment(goal)
}

// CalculateMacros splits a calorie target into daily macro grams.
// Ratios depend on the fitness goal; protein and carbs count 4 kcal/g,
// fat 9 kcal/g.
func CalculateMacros(calories int, goal string) models.Macros {
	var proteinRatio, carbsRatio, fatsRatio float64
	switch goal {
	case "muscle gain":
		proteinRatio, carbsRatio, fatsRatio = 0.30, 0.45, 0.25
	case "weight loss":
		proteinRatio, carbsRatio, fatsRatio = 0.35, 0.35, 0.30
	default:
		proteinRatio, carbsRatio, fatsRatio = 0.25, 0.45, 0.30
	}
	c := float64(calories)
	return models.Macros{
		Protein: int(c * proteinRatio / 4),
		Carbs:   int(c * carbsRatio / 4),
		Fats:    int(c * fatsRatio / 9),
	}
}

// BuildUserProfile derives the metrics block for a profile.
func BuildUserProfile(req models.ProfileRequest) models.UserProfile {
	calories := DailyCalories(req.Weight, req.Height, req.Age, req.Gender, req.ActivityLevel, req.FitnessGoal)
	return models.UserProfile{
		BMI:           CalculateBMI(req.Weight, req.Height),
		DailyCalories: calories,
		Macros:        CalculateMacros(calories, req.FitnessGoal),
	}
}
