package plan

import "context"

// Repository defines the persistence operations for plans. The backing
// store applies row-level security on owner_id; the owner checks in the
// application layer only mirror it for friendlier errors.
type Repository interface {
	Create(ctx context.Context, p *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, filter ListFilter) ([]*Plan, error)
	ListVersions(ctx context.Context, groupID string) ([]*Plan, error)
	// ActiveVersion returns the currently active version of a group, or
	// ErrPlanNotFound when no version is active.
	ActiveVersion(ctx context.Context, groupID string) (*Plan, error)
	// MaxVersion returns the highest version number in a group.
	MaxVersion(ctx context.Context, groupID string) (int, error)
	Update(ctx context.Context, p *Plan) error
	Delete(ctx context.Context, id string) error
}
