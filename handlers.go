package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/FitMentor/fitmentor-backend/internal/plancache"
	"github.com/FitMentor/fitmentor-backend/internal/repository"
	"github.com/FitMentor/fitmentor-backend/models"
	"github.com/FitMentor/fitmentor-backend/services"
)

func enableCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Api-Key")
}

func corsPreflightHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)
	w.Header().Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, resp models.ErrorResponse) {
	writeJSON(w, status, resp)
}

func generatePlanHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid JSON",
			Message: err.Error(),
		})
		return
	}

	req.Normalize()
	if verr := req.Validate(); verr != nil {
		writeError(w, http.StatusBadRequest, models.ErrorResponse{
			Error:         verr.Message,
			MissingFields: verr.MissingFields,
		})
		return
	}

	if !chatService.Configured() {
		writeError(w, http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "OpenRouter API key not configured",
			Message: "Please set OPENROUTER_API_KEY in .env file",
			Note:    "AI plan generation is disabled until a key is provided",
		})
		return
	}

	ctx := r.Context()
	cacheKey := plancache.Key(req)
	if payload, ok := cache.Get(ctx, cacheKey); ok {
		var plan models.Plan
		if err := json.Unmarshal(payload, &plan); err == nil {
			plan.Metadata = &models.PlanMetadata{
				Success:   true,
				Timestamp: time.Now().Format(time.RFC3339),
				Model:     chatService.Model(),
				Cached:    true,
			}
			writeJSON(w, http.StatusOK, plan)
			return
		}
	}

	log.Printf("Generating plan for: %s, %dy, %gkg, %gcm (goal: %s, diet: %s)",
		req.Gender, req.Age, req.Weight, req.Height, req.FitnessGoal, req.DietaryPreferences)

	plan, sources := plannerService.GeneratePlan(ctx, req)

	// Fallback-filled plans are tied to a transient upstream failure;
	// only fully AI-generated plans are worth a cache TTL.
	if sources.WorkoutsFromAI && sources.MealsFromAI {
		if payload, err := json.Marshal(plan); err == nil {
			cache.Set(ctx, cacheKey, payload)
		}
	}

	meta := &models.PlanMetadata{
		Success:   true,
		Timestamp: time.Now().Format(time.RFC3339),
		Model:     chatService.Model(),
	}
	if repo != nil {
		profileJSON, _ := json.Marshal(req)
		planJSON, _ := json.Marshal(plan)
		id, err := repo.Plan.Create(&repository.PlanRecord{
			Profile:        profileJSON,
			Plan:           planJSON,
			Model:          chatService.Model(),
			WorkoutsFromAI: sources.WorkoutsFromAI,
			MealsFromAI:    sources.MealsFromAI,
		})
		if err != nil {
			log.Printf("Warning: failed to store plan history: %v", err)
		} else {
			meta.PlanID = id
		}
	}
	plan.Metadata = meta

	writeJSON(w, http.StatusOK, plan)
}

func calculateBMIHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	var req models.BMIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid JSON",
			Message: err.Error(),
		})
		return
	}
	if verr := req.Validate(); verr != nil {
		writeError(w, http.StatusBadRequest, models.ErrorResponse{
			Error:         verr.Message,
			MissingFields: verr.MissingFields,
		})
		return
	}

	bmi := services.CalculateBMI(req.Weight, req.Height)
	category, recommendation := services.BMICategory(bmi)
	writeJSON(w, http.StatusOK, models.BMIResponse{
		BMI:            bmi,
		Category:       category,
		Recommendation: recommendation,
	})
}

func calculateCaloriesHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	var req models.CaloriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid JSON",
			Message: err.Error(),
		})
		return
	}
	if verr := req.Validate(); verr != nil {
		writeError(w, http.StatusBadRequest, models.ErrorResponse{
			Error:         verr.Message,
			MissingFields: verr.MissingFields,
		})
		return
	}

	gender := strings.ToLower(req.Gender)
	activityLevel := strings.ToLower(req.ActivityLevel)
	goal := strings.ToLower(req.FitnessGoal)

	bmr := services.CalculateBMR(req.Weight, req.Height, req.Age, gender)
	tdee := bmr * services.ActivityMultiplier(activityLevel)
	adjustment := services.GoalAdjustment(goal)
	target := int(tdee) + adjustment
	macros := services.CalculateMacros(target, goal)

	writeJSON(w, http.StatusOK, models.CaloriesResponse{
		BMR:            int(bmr),
		TDEE:           int(tdee),
		TargetCalories: target,
		Adjustment:     adjustment,
		Macros: models.MacroBreakdown{
			ProteinG: macros.Protein,
			CarbsG:   macros.Carbs,
			FatsG:    macros.Fats,
		},
		Explanation: models.CaloriesExplanation{
			BMR:    "Basal Metabolic Rate - calories burned at rest",
			TDEE:   "Total Daily Energy Expenditure",
			Target: "Adjusted for " + goal + " goal",
		},
	})
}

func historyUnavailable(w http.ResponseWriter) {
	writeError(w, http.StatusServiceUnavailable, models.ErrorResponse{
		Error:   "Plan history not configured",
		Message: "Set DB_HOST to enable plan history",
	})
}

func planHistoryHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	if repo == nil {
		historyUnavailable(w)
		return
	}
	recs, err := repo.Plan.ListRecent(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load plan history",
			Message: err.Error(),
		})
		return
	}
	plans := make([]models.PlanSummary, 0, len(recs))
	for _, rec := range recs {
		plans = append(plans, models.PlanSummary{
			ID:             rec.ID,
			Model:          rec.Model,
			WorkoutsFromAI: rec.WorkoutsFromAI,
			MealsFromAI:    rec.MealsFromAI,
			CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

func planByIDHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	if repo == nil {
		historyUnavailable(w)
		return
	}
	rec, err := repo.Plan.GetByID(r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, models.ErrorResponse{Error: "Plan not found"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load plan",
			Message: err.Error(),
		})
		return
	}

	var plan models.Plan
	if err := json.Unmarshal(rec.Plan, &plan); err != nil {
		writeError(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Stored plan is unreadable",
			Message: err.Error(),
		})
		return
	}
	plan.Metadata = &models.PlanMetadata{
		Success:   true,
		Timestamp: rec.CreatedAt.Format(time.RFC3339),
		Model:     rec.Model,
		PlanID:    rec.ID,
	}
	writeJSON(w, http.StatusOK, plan)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	apiKeyStatus := "missing"
	if chatService.Configured() {
		apiKeyStatus = "configured"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":         "healthy",
		"timestamp":      time.Now().Format(time.RFC3339),
		"service":        "FitMentor AI API",
		"model":          chatService.Model(),
		"api_key_status": apiKeyStatus,
	})
}

func apiInfoHandler(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	apiKeyStatus := "missing"
	if chatService.Configured() {
		apiKeyStatus = "configured"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "Welcome to FitMentor AI",
		"version":        "2.0.0",
		"model":          chatService.Model(),
		"api_key_status": apiKeyStatus,
		"endpoints": map[string]string{
			"/api/generate-plan":      "POST - Generate AI-powered fitness plan",
			"/api/health":             "GET - Check API health",
			"/api/calculate-bmi":      "POST - Calculate BMI",
			"/api/calculate-calories": "POST - Calculate daily caloric needs",
			"/api/plans":              "GET - List recent plan history",
			"/api/plans/{id}":         "GET - Fetch a stored plan",
		},
		"note": "Set OPENROUTER_API_KEY in .env file to enable AI features",
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, models.ErrorResponse{Error: "Endpoint not found"})
		return
	}
	http.ServeFile(w, r, "web/index.html")
}
