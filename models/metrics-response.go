package models

// BMIResponse is the body returned by POST /api/calculate-bmi.
type BMIResponse struct {
	BMI            float64 `json:"bmi"`
	Category       string  `json:"category"`
	Recommendation string  `json:"recommendation"`
}

// CaloriesResponse is the body returned by POST /api/calculate-calories.
type CaloriesResponse struct {
	BMR            int                 `json:"bmr"`
	TDEE           int                 `json:"tdee"`
	TargetCalories int                 `json:"target_calories"`
	Adjustment     int                 `json:"adjustment"`
	Macros         MacroBreakdown      `json:"macros"`
	Explanation    CaloriesExplanation `json:"explanation"`
}

// MacroBreakdown mirrors Macros with the gram-suffixed field names the
// calculator endpoint has always used.
type MacroBreakdown struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatsG    int `json:"fats_g"`
}

type CaloriesExplanation struct {
	BMR    string `json:"bmr"`
	TDEE   string `json:"tdee"`
	Target string `json:"target"`
}

// ErrorResponse is the JSON error body for all endpoints.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Note          string   `json:"note,omitempty"`
}
