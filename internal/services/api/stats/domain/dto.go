// Package domain holds DTOs for search telemetry stats
package domain

// Dates are calendar days in UTC

// TimeRange defines an inclusive day window
type TimeRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2025-08-01"`
	End   string `json:"end"   validate:"required,datetime=2006-01-02" example:"2025-08-31"`
}

// StepsInput buckets searches by the relaxation step that answered them
type StepsInput struct {
	Range TimeRange `json:"range"`
	// optional filter
	Category string `json:"category,omitempty" validate:"omitempty,max=100" example:"Electronics"`
}

// StepRow is one relaxation step bucket
type StepRow struct {
	Step       int     `json:"step"        example:"0"`
	Searches   int64   `json:"searches"    example:"420"`
	AvgResults float64 `json:"avg_results" example:"9.5"`
	Sampled    int64   `json:"sampled"     example:"120"`
}

// CategoriesInput buckets searches by category
type CategoriesInput struct {
	Range TimeRange `json:"range"`
	Limit int       `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"50"`
}

// CategoryRow is one category bucket
type CategoryRow struct {
	Category     string  `json:"category"       example:"Electronics"`
	Searches     int64   `json:"searches"       example:"1200"`
	NoResults    int64   `json:"no_results"     example:"12"`
	Degraded     int64   `json:"degraded"       example:"3"`
	Relaxed      int64   `json:"relaxed"        example:"210"`
	AvgElapsedMS float64 `json:"avg_elapsed_ms" example:"18.2"`
}
