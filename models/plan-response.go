package models

// Plan is the combined payload returned by POST /api/generate-plan.
// The workouts and meals sections come from the AI calls (or their
// fallbacks); everything else is derived or static.
type Plan struct {
	UserProfile     UserProfile     `json:"user_profile"`
	Workouts        []DayWorkout    `json:"workouts"`
	Meals           []DayMeals      `json:"meals"`
	TrackingMetrics TrackingMetrics `json:"tracking_metrics"`
	Notifications   []Notification  `json:"notifications"`
	WeeklyChallenge WeeklyChallenge `json:"weekly_challenge"`
	FitnessTips     []FitnessTip    `json:"fitness_tips"`
	Metadata        *PlanMetadata   `json:"_metadata,omitempty"`
}

// UserProfile holds the derived metrics echoed back to the client.
type UserProfile struct {
	BMI           float64 `json:"bmi"`
	DailyCalories int     `json:"daily_calories"`
	Macros        Macros  `json:"macros"`
}

// Macros are daily macronutrient targets in grams.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

// DayWorkout is one day of the weekly workout plan.
type DayWorkout struct {
	Day       string     `json:"day"`
	Exercises []Exercise `json:"exercises"`
}

type Exercise struct {
	Phase             string `json:"phase,omitempty"`
	ExerciseName      string `json:"exercise_name"`
	Sets              int    `json:"sets"`
	Reps              int    `json:"reps"`
	DurationMinutes   int    `json:"duration_minutes"`
	IntensityLevel    string `json:"intensity_level"`
	EquipmentRequired string `json:"equipment_required"`
	Alternative       string `json:"alternative,omitempty"`
}

// DayMeals is one day of the weekly meal plan.
type DayMeals struct {
	Day       string `json:"day"`
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
}

type Meal struct {
	Meal         string   `json:"meal"`
	Description  string   `json:"description,omitempty"`
	ProteinG     float64  `json:"protein_g"`
	CarbsG       float64  `json:"carbs_g"`
	FatsG        float64  `json:"fats_g"`
	Calories     float64  `json:"calories"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// TrackingMetrics are weekly self-tracking suggestions.
type TrackingMetrics struct {
	Weight      string `json:"weight"`
	BodyFat     string `json:"body_fat"`
	MuscleMass  string `json:"muscle_mass"`
	WaterIntake string `json:"water_intake"`
	SleepHours  string `json:"sleep_hours"`
	Steps       string `json:"steps"`
}

type Notification struct {
	Time    string `json:"time"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type WeeklyChallenge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Goal        string `json:"goal"`
	Reward      string `json:"reward"`
}

type FitnessTip struct {
	Day        string `json:"day"`
	Tip        string `json:"tip"`
	Motivation string `json:"motivation"`
}

// PlanSummary is one entry in the plan history listing.
type PlanSummary struct {
	ID             string `json:"id"`
	Model          string `json:"model"`
	WorkoutsFromAI bool   `json:"workouts_from_ai"`
	MealsFromAI    bool   `json:"meals_from_ai"`
	CreatedAt      string `json:"created_at"`
}

// PlanMetadata is attached to the response under "_metadata".
type PlanMetadata struct {
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
	Model     string `json:"model"`
	PlanID    string `json:"plan_id,omitempty"`
	Cached    bool   `json:"cached,omitempty"`
}
