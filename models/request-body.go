package models

import "strings"

// ProfileRequest is the body of POST /api/generate-plan.
type ProfileRequest struct {
	Weight             float64 `json:"weight"`
	Height             float64 `json:"height"`
	Age                int     `json:"age"`
	Gender             string  `json:"gender"`
	ActivityLevel      string  `json:"activity_level"`
	FitnessGoal        string  `json:"fitness_goal"`
	DietaryPreferences string  `json:"dietary_preferences"`
	HealthRestrictions string  `json:"health_restrictions"`
}

// BMIRequest is the body of POST /api/calculate-bmi.
type BMIRequest struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

// CaloriesRequest is the body of POST /api/calculate-calories.
type CaloriesRequest struct {
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	FitnessGoal   string  `json:"fitness_goal"`
}

var (
	validGenders = map[string]bool{
		"male": true, "female": true,
	}
	validActivityLevels = map[string]bool{
		"sedentary": true, "light": true, "moderate": true,
		"active": true, "very_active": true,
	}
	validGoals = map[string]bool{
		"weight loss": true, "muscle gain": true,
		"maintenance": true, "endurance": true,
	}
	validDiets = map[string]bool{
		"vegetarian": true, "vegan": true, "keto": true, "balanced": true,
	}
)

// ValidationError reports why a request body was rejected.
type ValidationError struct {
	Message       string
	MissingFields []string
}

func (e *ValidationError) Error() string { return e.Message }

// Normalize lowercases the enum fields and fills optional defaults.
func (p *ProfileRequest) Normalize() {
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.ActivityLevel = strings.ToLower(strings.TrimSpace(p.ActivityLevel))
	p.FitnessGoal = strings.ToLower(strings.TrimSpace(p.FitnessGoal))
	p.DietaryPreferences = strings.ToLower(strings.TrimSpace(p.DietaryPreferences))
	p.HealthRestrictions = strings.ToLower(strings.TrimSpace(p.HealthRestrictions))
	if p.HealthRestrictions == "" {
		p.HealthRestrictions = "none"
	}
}

// Validate checks required fields, numeric ranges and enum values.
// Call Normalize first.
func (p *ProfileRequest) Validate() *ValidationError {
	var missing []string
	if p.Weight == 0 {
		missing = append(missing, "weight")
	}
	if p.Height == 0 {
		missing = append(missing, "height")
	}
	if p.Age == 0 {
		missing = append(missing, "age")
	}
	if p.Gender == "" {
		missing = append(missing, "gender")
	}
	if p.ActivityLevel == "" {
		missing = append(missing, "activity_level")
	}
	if p.FitnessGoal == "" {
		missing = append(missing, "fitness_goal")
	}
	if p.DietaryPreferences == "" {
		missing = append(missing, "dietary_preferences")
	}
	if len(missing) > 0 {
		return &ValidationError{Message: "Missing required fields", MissingFields: missing}
	}

	if p.Weight < 0 || p.Weight > 300 {
		return &ValidationError{Message: "Weight must be between 1 and 300 kg"}
	}
	if p.Height < 0 || p.Height > 250 {
		return &ValidationError{Message: "Height must be between 1 and 250 cm"}
	}
	if p.Age < 0 || p.Age > 120 {
		return &ValidationError{Message: "Age must be between 1 and 120 years"}
	}

	if !validGenders[p.Gender] {
		return &ValidationError{Message: "Gender must be one of: male, female"}
	}
	if !validActivityLevels[p.ActivityLevel] {
		return &ValidationError{Message: "Activity level must be one of: sedentary, light, moderate, active, very_active"}
	}
	if !validGoals[p.FitnessGoal] {
		return &ValidationError{Message: "Fitness goal must be one of: weight loss, muscle gain, maintenance, endurance"}
	}
	if !validDiets[p.DietaryPreferences] {
		return &ValidationError{Message: "Dietary preference must be one of: vegetarian, vegan, keto, balanced"}
	}
	return nil
}

// Validate checks the calculator inputs.
func (b *BMIRequest) Validate() *ValidationError {
	var missing []string
	if b.Weight == 0 {
		missing = append(missing, "weight")
	}
	if b.Height == 0 {
		missing = append(missing, "height")
	}
	if len(missing) > 0 {
		return &ValidationError{Message: "Weight and height are required", MissingFields: missing}
	}
	if b.Weight < 0 || b.Weight > 300 {
		return &ValidationError{Message: "Weight must be between 1 and 300 kg"}
	}
	if b.Height < 0 || b.Height > 250 {
		return &ValidationError{Message: "Height must be between 1 and 250 cm"}
	}
	return nil
}

// Validate checks required fields and enum values.
func (c *CaloriesRequest) Validate() *ValidationError {
	var missing []string
	if c.Weight == 0 {
		missing = append(missing, "weight")
	}
	if c.Height == 0 {
		missing = append(missing, "height")
	}
	if c.Age == 0 {
		missing = append(missing, "age")
	}
	if c.Gender == "" {
		missing = append(missing, "gender")
	}
	if c.ActivityLevel == "" {
		missing = append(missing, "activity_level")
	}
	if c.FitnessGoal == "" {
		missing = append(missing, "fitness_goal")
	}
	if len(missing) > 0 {
		return &ValidationError{Message: "All fields are required", MissingFields: missing}
	}
	if !validGenders[strings.ToLower(c.Gender)] {
		return &ValidationError{Message: "Gender must be one of: male, female"}
	}
	return nil
}
