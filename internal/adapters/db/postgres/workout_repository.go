package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitlog/internal/domain/workout"
)

// WorkoutRepository is a Postgres implementation of workout.Repository
type WorkoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository constructs a WorkoutRepository
func NewWorkoutRepository(db *sql.DB) *WorkoutRepository { return &WorkoutRepository{db: db} }

const workoutColumns = `id, owner_id, plan_id, title, notes, sets, started_at, completed_at, created_at, updated_at`

func scanWorkout(row scanner) (*workout.Workout, error) {
	var w workout.Workout
	var planID sql.NullString
	var sets []byte
	var completedAt sql.NullTime
	err := row.Scan(&w.ID, &w.OwnerID, &planID, &w.Title, &w.Notes, &sets,
		&w.StartedAt, &completedAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if planID.Valid {
		w.PlanID = planID.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		w.CompletedAt = &t
	}
	if err := json.Unmarshal(sets, &w.Sets); err != nil {
		return nil, fmt.Errorf("decode sets: %w", err)
	}
	return &w, nil
}

func (r *WorkoutRepository) Create(ctx context.Context, w *workout.Workout) error {
	sets, err := json.Marshal(w.Sets)
	if err != nil {
		return fmt.Errorf("encode sets: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO workouts (`+workoutColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		w.ID, w.OwnerID, nullString(w.PlanID), w.Title, w.Notes, sets, w.StartedAt, nullTime(w.CompletedAt), w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

func (r *WorkoutRepository) Get(ctx context.Context, id string) (*workout.Workout, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id=$1`, id)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workout.ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

func (r *WorkoutRepository) List(ctx context.Context, filter workout.ListFilter) ([]*workout.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE owner_id=$1`
	args := []interface{}{filter.OwnerID}
	if filter.Completed != nil {
		if *filter.Completed {
			query += " AND completed_at IS NOT NULL"
		} else {
			query += " AND completed_at IS NULL"
		}
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY started_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	out := make([]*workout.Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkoutRepository) Update(ctx context.Context, w *workout.Workout) error {
	sets, err := json.Marshal(w.Sets)
	if err != nil {
		return fmt.Errorf("encode sets: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE workouts SET title=$2, notes=$3, sets=$4, completed_at=$5, updated_at=$6 WHERE id=$1`,
		w.ID, w.Title, w.Notes, sets, nullTime(w.CompletedAt), w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return workout.ErrWorkoutNotFound
	}
	return nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return workout.ErrWorkoutNotFound
	}
	return nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
