package plan

import "time"

// Status represents the lifecycle state of a plan version
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Plan represents one version of a workout plan template. Versions of
// the same plan share a GroupID; an active version is immutable and can
// only be superseded by a newer version.
type Plan struct {
	ID          string     `json:"id"`
	GroupID     string     `json:"group_id"` // stable across versions
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises"`
	Version     int        `json:"version"`
	Status      Status     `json:"status"`
	Public      bool       `json:"public"` // readable without authentication
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Exercise is a single templated entry within a plan
type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"rest_seconds,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// IsEditable reports whether the version can be modified in place
func (p *Plan) IsEditable() bool {
	return p.Status == StatusDraft
}

// IsTerminal reports whether the version can no longer change state
func (p *Plan) IsTerminal() bool {
	return p.Status == StatusArchived
}

// CreateRequest represents the data needed to create a new plan
type CreateRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises" binding:"required,min=1,dive"`
	Public      bool       `json:"public,omitempty"`
}

// UpdateRequest represents the data that can change on a plan. Applied
// in place on drafts; on active versions it produces a new draft.
type UpdateRequest struct {
	Name        string     `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises,omitempty"`
	Public      *bool      `json:"public,omitempty"`
}

// ListFilter narrows a plan listing
type ListFilter struct {
	OwnerID string
	Status  Status // empty means all
	Limit   int
	Offset  int
}
