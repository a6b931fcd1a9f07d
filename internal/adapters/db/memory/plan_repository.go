package memory

import (
	"context"
	"sort"
	"sync"

	"fitlog/internal/domain/plan"
)

// PlanRepository is an in-memory implementation of plan.Repository
type PlanRepository struct {
	mu    sync.RWMutex
	plans map[string]*plan.Plan // plan ID -> Plan
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{plans: make(map[string]*plan.Plan)}
}

func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *p
	r.plans[p.ID] = &clone
	return nil
}

func (r *PlanRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.plans[id]
	if !exists {
		return nil, plan.ErrPlanNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *PlanRepository) List(ctx context.Context, filter plan.ListFilter) ([]*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*plan.Plan, 0)
	for _, p := range r.plans {
		if p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, filter.Offset, filter.Limit), nil
}

func (r *PlanRepository) ListVersions(ctx context.Context, groupID string) ([]*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := make([]*plan.Plan, 0)
	for _, p := range r.plans {
		if p.GroupID == groupID {
			clone := *p
			versions = append(versions, &clone)
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})
	return versions, nil
}

func (r *PlanRepository) ActiveVersion(ctx context.Context, groupID string) (*plan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plans {
		if p.GroupID == groupID && p.Status == plan.StatusActive {
			clone := *p
			return &clone, nil
		}
	}
	return nil, plan.ErrPlanNotFound
}

func (r *PlanRepository) MaxVersion(ctx context.Context, groupID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	max := 0
	for _, p := range r.plans {
		if p.GroupID == groupID && p.Version > max {
			max = p.Version
		}
	}
	return max, nil
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[p.ID]; !exists {
		return plan.ErrPlanNotFound
	}
	clone := *p
	r.plans[p.ID] = &clone
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[id]; !exists {
		return plan.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
