package plan

import "errors"

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrNotOwner        = errors.New("plan belongs to another user")
	ErrArchived        = errors.New("plan version is archived")
	ErrAlreadyActive   = errors.New("plan version is already active")
	ErrNotDraft        = errors.New("only draft versions can be activated")
	ErrEmptyExercises  = errors.New("plan needs at least one exercise")
	ErrInvalidExercise = errors.New("exercise needs a name and positive sets and reps")
)
