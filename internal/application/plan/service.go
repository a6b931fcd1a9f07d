package plan

import (
	"context"
	"fmt"
	"time"

	"fitlog/internal/domain/plan"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Locker serializes state transitions for a plan group across replicas.
// Backed by Postgres advisory locks in production; may be nil in
// single-process deployments.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(context.Context) error, error)
}

// Service implements the business logic for versioned workout plans
type Service struct {
	repo  plan.Repository
	locks Locker
}

// NewService creates a new plan service
func NewService(repo plan.Repository, locks Locker) *Service {
	return &Service{repo: repo, locks: locks}
}

// Create creates a new plan as version 1 in draft state
func (s *Service) Create(ctx context.Context, ownerID string, req *plan.CreateRequest) (*plan.Plan, error) {
	if err := validateExercises(req.Exercises); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &plan.Plan{
		ID:          uuid.New().String(),
		GroupID:     uuid.New().String(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Exercises:   req.Exercises,
		Version:     1,
		Status:      plan.StatusDraft,
		Public:      req.Public,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return p, nil
}

// Get retrieves a plan owned by the given user
func (s *Service) Get(ctx context.Context, ownerID, planID string) (*plan.Plan, error) {
	return s.getOwned(ctx, ownerID, planID)
}

// GetShared retrieves a plan for an optionally-authenticated viewer.
// Public plans are readable by anyone; private ones only by their owner.
func (s *Service) GetShared(ctx context.Context, viewerID, planID string) (*plan.Plan, error) {
	p, err := s.repo.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !p.Public && p.OwnerID != viewerID {
		return nil, plan.ErrPlanNotFound
	}
	return p, nil
}

// List returns the caller's plans, newest first
func (s *Service) List(ctx context.Context, filter plan.ListFilter) ([]*plan.Plan, error) {
	filter.Limit = clampLimit(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// ListVersions returns every version in the plan's group, oldest first
func (s *Service) ListVersions(ctx context.Context, ownerID, planID string) ([]*plan.Plan, error) {
	p, err := s.getOwned(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListVersions(ctx, p.GroupID)
}

// Update modifies a plan. Drafts change in place; an active version is
// immutable, so updating it creates the next draft version in the
// group. Archived versions reject updates.
func (s *Service) Update(ctx context.Context, ownerID, planID string, req *plan.UpdateRequest) (*plan.Plan, error) {
	p, err := s.getOwned(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}
	if p.IsTerminal() {
		return nil, plan.ErrArchived
	}
	if req.Exercises != nil {
		if err := validateExercises(req.Exercises); err != nil {
			return nil, err
		}
	}

	if p.IsEditable() {
		applyUpdate(p, req)
		p.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to update plan: %w", err)
		}
		return p, nil
	}

	// Active version: carve out the next draft
	release, err := s.lockGroup(ctx, p.GroupID)
	if err != nil {
		return nil, err
	}
	defer release(ctx)

	maxVersion, err := s.repo.MaxVersion(ctx, p.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve latest version: %w", err)
	}

	now := time.Now()
	next := &plan.Plan{
		ID:          uuid.New().String(),
		GroupID:     p.GroupID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Exercises:   p.Exercises,
		Version:     maxVersion + 1,
		Status:      plan.StatusDraft,
		Public:      p.Public,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyUpdate(next, req)

	if err := s.repo.Create(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to create plan version: %w", err)
	}
	return next, nil
}

// Activate promotes a draft to active and archives the previously
// active version of the group in the same operation.
func (s *Service) Activate(ctx context.Context, ownerID, planID string) (*plan.Plan, error) {
	p, err := s.getOwned(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}
	switch p.Status {
	case plan.StatusActive:
		return nil, plan.ErrAlreadyActive
	case plan.StatusArchived:
		return nil, plan.ErrArchived
	case plan.StatusDraft:
	default:
		return nil, plan.ErrNotDraft
	}

	release, err := s.lockGroup(ctx, p.GroupID)
	if err != nil {
		return nil, err
	}
	defer release(ctx)

	current, err := s.repo.ActiveVersion(ctx, p.GroupID)
	if err == nil && current.ID != p.ID {
		current.Status = plan.StatusArchived
		current.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, current); err != nil {
			return nil, fmt.Errorf("failed to archive previous version: %w", err)
		}
	}

	p.Status = plan.StatusActive
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to activate plan: %w", err)
	}
	return p, nil
}

// Archive retires a plan version. Archived is terminal.
func (s *Service) Archive(ctx context.Context, ownerID, planID string) error {
	p, err := s.getOwned(ctx, ownerID, planID)
	if err != nil {
		return err
	}
	if p.IsTerminal() {
		return plan.ErrArchived
	}

	p.Status = plan.StatusArchived
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to archive plan: %w", err)
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, ownerID, planID string) (*plan.Plan, error) {
	p, err := s.repo.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, plan.ErrNotOwner
	}
	return p, nil
}

func (s *Service) lockGroup(ctx context.Context, groupID string) (func(context.Context) error, error) {
	if s.locks == nil {
		return func(context.Context) error { return nil }, nil
	}
	release, err := s.locks.Acquire(ctx, "plan-group:"+groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock plan group: %w", err)
	}
	return release, nil
}

func applyUpdate(p *plan.Plan, req *plan.UpdateRequest) {
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Exercises != nil {
		p.Exercises = req.Exercises
	}
	if req.Public != nil {
		p.Public = *req.Public
	}
}

func validateExercises(exercises []plan.Exercise) error {
	if len(exercises) == 0 {
		return plan.ErrEmptyExercises
	}
	for _, ex := range exercises {
		if ex.Name == "" || ex.Sets <= 0 || ex.Reps <= 0 {
			return plan.ErrInvalidExercise
		}
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
