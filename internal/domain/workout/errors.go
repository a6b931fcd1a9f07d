package workout

import "errors"

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrNotOwner         = errors.New("workout belongs to another user")
	ErrAlreadyCompleted = errors.New("workout is already completed")
	ErrPlanNotActive    = errors.New("referenced plan version is not active")
	ErrInvalidSet       = errors.New("set needs an exercise name and non-negative reps")
)
