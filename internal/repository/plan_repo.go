package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PlanRecord is one generated plan as stored in plan history.
type PlanRecord struct {
	ID             string
	Profile        []byte
	Plan           []byte
	Model          string
	WorkoutsFromAI bool
	MealsFromAI    bool
	CreatedAt      time.Time
}

// PlanRepository stores generated plans.
type PlanRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create inserts a plan and returns its generated ID.
func (r *PlanRepository) Create(rec *PlanRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.Exec(`
		INSERT INTO plans
		(id, profile, plan, model, workouts_from_ai, meals_from_ai, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		rec.ID, rec.Profile, rec.Plan, rec.Model,
		rec.WorkoutsFromAI, rec.MealsFromAI,
	)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// GetByID returns a stored plan.
func (r *PlanRepository) GetByID(id string) (*PlanRecord, error) {
	rec := &PlanRecord{}
	err := r.db.QueryRow(`
		SELECT id, profile, plan, COALESCE(model, ''),
		       COALESCE(workouts_from_ai, false), COALESCE(meals_from_ai, false),
		       created_at
		FROM plans
		WHERE id = $1`, id).Scan(
		&rec.ID, &rec.Profile, &rec.Plan, &rec.Model,
		&rec.WorkoutsFromAI, &rec.MealsFromAI, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecent returns the newest plans, capped at limit.
func (r *PlanRepository) ListRecent(limit int) ([]PlanRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, profile, plan, COALESCE(model, ''),
		       COALESCE(workouts_from_ai, false), COALESCE(meals_from_ai, false),
		       created_at
		FROM plans
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		if err := rows.Scan(
			&rec.ID, &rec.Profile, &rec.Plan, &rec.Model,
			&rec.WorkoutsFromAI, &rec.MealsFromAI, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteOlderThan removes plans created before the cutoff and returns
// how many rows were deleted.
func (r *PlanRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec("DELETE FROM plans WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
