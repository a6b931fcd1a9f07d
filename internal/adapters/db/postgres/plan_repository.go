package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fitlog/internal/domain/plan"
)

// PlanRepository is a Postgres implementation of plan.Repository
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository constructs a PlanRepository
func NewPlanRepository(db *sql.DB) *PlanRepository { return &PlanRepository{db: db} }

const planColumns = `id, group_id, owner_id, name, description, exercises, version, status, public, created_at, updated_at`

// scanner is implemented by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row scanner) (*plan.Plan, error) {
	var p plan.Plan
	var exercises []byte
	err := row.Scan(&p.ID, &p.GroupID, &p.OwnerID, &p.Name, &p.Description, &exercises,
		&p.Version, &p.Status, &p.Public, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(exercises, &p.Exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	return &p, nil
}

func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	exercises, err := json.Marshal(p.Exercises)
	if err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO plans (`+planColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.GroupID, p.OwnerID, p.Name, p.Description, exercises, p.Version, p.Status, p.Public, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id=$1`, id)
	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, plan.ErrPlanNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

func (r *PlanRepository) List(ctx context.Context, filter plan.ListFilter) ([]*plan.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE owner_id=$1`
	args := []interface{}{filter.OwnerID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	out := make([]*plan.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlanRepository) ListVersions(ctx context.Context, groupID string) ([]*plan.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planColumns+` FROM plans WHERE group_id=$1 ORDER BY version ASC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list plan versions: %w", err)
	}
	defer rows.Close()

	out := make([]*plan.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlanRepository) ActiveVersion(ctx context.Context, groupID string) (*plan.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE group_id=$1 AND status=$2`, groupID, plan.StatusActive)
	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, plan.ErrPlanNotFound
		}
		return nil, fmt.Errorf("get active version: %w", err)
	}
	return p, nil
}

func (r *PlanRepository) MaxVersion(ctx context.Context, groupID string) (int, error) {
	var max int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version),0) FROM plans WHERE group_id=$1`, groupID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max version: %w", err)
	}
	return max, nil
}

func (r *PlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	exercises, err := json.Marshal(p.Exercises)
	if err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE plans SET name=$2, description=$3, exercises=$4, status=$5, public=$6, updated_at=$7 WHERE id=$1`,
		p.ID, p.Name, p.Description, exercises, p.Status, p.Public, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return plan.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return plan.ErrPlanNotFound
	}
	return nil
}
