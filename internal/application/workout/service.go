package workout

import (
	"context"
	"fmt"
	"time"

	"fitlog/internal/domain/plan"
	"fitlog/internal/domain/workout"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Notifier pushes workout events to the owner's connected devices
type Notifier interface {
	WorkoutCreated(w *workout.Workout)
	WorkoutCompleted(w *workout.Workout)
	WorkoutDeleted(ownerID, workoutID string)
}

// Service implements the business logic for logged workouts
type Service struct {
	repo     workout.Repository
	planRepo plan.Repository
	notifier Notifier
}

// NewService creates a new workout service
func NewService(repo workout.Repository, planRepo plan.Repository) *Service {
	return &Service{repo: repo, planRepo: planRepo}
}

// SetNotifier sets the live-sync notifier for the service
func (s *Service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Create logs a new workout. A referenced plan must be an active
// version the caller can see.
func (s *Service) Create(ctx context.Context, ownerID string, req *workout.CreateRequest) (*workout.Workout, error) {
	if err := validateSets(req.Sets); err != nil {
		return nil, err
	}
	if req.PlanID != "" {
		if err := s.checkPlanRef(ctx, ownerID, req.PlanID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	startedAt := now
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}

	w := &workout.Workout{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		PlanID:    req.PlanID,
		Title:     req.Title,
		Notes:     req.Notes,
		Sets:      req.Sets,
		StartedAt: startedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if w.Sets == nil {
		w.Sets = []workout.Set{}
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}
	if s.notifier != nil {
		s.notifier.WorkoutCreated(w)
	}
	return w, nil
}

// Get retrieves a workout owned by the given user
func (s *Service) Get(ctx context.Context, ownerID, workoutID string) (*workout.Workout, error) {
	return s.getOwned(ctx, ownerID, workoutID)
}

// List returns the caller's workouts, newest first
func (s *Service) List(ctx context.Context, filter workout.ListFilter) ([]*workout.Workout, error) {
	filter.Limit = clampLimit(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// Update modifies the mutable fields of a workout
func (s *Service) Update(ctx context.Context, ownerID, workoutID string, req *workout.UpdateRequest) (*workout.Workout, error) {
	w, err := s.getOwned(ctx, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	if req.Sets != nil {
		if err := validateSets(req.Sets); err != nil {
			return nil, err
		}
		w.Sets = req.Sets
	}
	if req.Title != nil {
		w.Title = *req.Title
	}
	if req.Notes != nil {
		w.Notes = *req.Notes
	}
	w.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}
	return w, nil
}

// Complete closes out a workout session exactly once
func (s *Service) Complete(ctx context.Context, ownerID, workoutID string) (*workout.Workout, error) {
	w, err := s.getOwned(ctx, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.IsCompleted() {
		return nil, workout.ErrAlreadyCompleted
	}

	now := time.Now()
	w.CompletedAt = &now
	w.UpdatedAt = now

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to complete workout: %w", err)
	}
	if s.notifier != nil {
		s.notifier.WorkoutCompleted(w)
	}
	return w, nil
}

// Delete removes a workout
func (s *Service) Delete(ctx context.Context, ownerID, workoutID string) error {
	w, err := s.getOwned(ctx, ownerID, workoutID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, w.ID); err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if s.notifier != nil {
		s.notifier.WorkoutDeleted(ownerID, w.ID)
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, ownerID, workoutID string) (*workout.Workout, error) {
	w, err := s.repo.Get(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, workout.ErrNotOwner
	}
	return w, nil
}

func (s *Service) checkPlanRef(ctx context.Context, ownerID, planID string) error {
	p, err := s.planRepo.Get(ctx, planID)
	if err != nil {
		return workout.ErrPlanNotActive
	}
	if p.Status != plan.StatusActive {
		return workout.ErrPlanNotActive
	}
	if p.OwnerID != ownerID && !p.Public {
		return workout.ErrPlanNotActive
	}
	return nil
}

func validateSets(sets []workout.Set) error {
	for _, set := range sets {
		if set.Exercise == "" || set.Reps < 0 {
			return workout.ErrInvalidSet
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
