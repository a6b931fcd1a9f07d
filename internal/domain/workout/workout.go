package workout

import "time"

// Workout represents a logged exercise session
type Workout struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	PlanID      string     `json:"plan_id,omitempty"` // optional reference to an active plan version
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	Sets        []Set      `json:"sets"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Set is a single performed set within a workout
type Set struct {
	Exercise  string  `json:"exercise"`
	SetNumber int     `json:"set_number"`
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weight_kg,omitempty"`
	RPE       float64 `json:"rpe,omitempty"` // rating of perceived exertion, 1-10
	Completed bool    `json:"completed"`
}

// IsCompleted reports whether the session has been closed out
func (w *Workout) IsCompleted() bool {
	return w.CompletedAt != nil
}

// CreateRequest represents the data needed to log a new workout
type CreateRequest struct {
	PlanID    string     `json:"plan_id,omitempty"`
	Title     string     `json:"title" binding:"required"`
	Notes     string     `json:"notes,omitempty"`
	Sets      []Set      `json:"sets,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"` // defaults to now
}

// UpdateRequest represents the mutable fields of a workout
type UpdateRequest struct {
	Title *string `json:"title,omitempty"`
	Notes *string `json:"notes,omitempty"`
	Sets  []Set   `json:"sets,omitempty"`
}

// ListFilter narrows a workout listing
type ListFilter struct {
	OwnerID   string
	Completed *bool // nil means all
	Limit     int
	Offset    int
}
