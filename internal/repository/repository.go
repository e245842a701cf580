package repository

import "database/sql"

// Repository bundles the data-access layers.
type Repository struct {
	Plan *PlanRepository
}

// New creates a Repository over an open connection.
func New(db *sql.DB) *Repository {
	return &Repository{
		Plan: NewPlanRepository(db),
	}
}
