// Copyright (c) 2026 TeachyAI. All rights reserved.

package lesson

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/platform/database/schema"
	"github.com/teachyai/teachy/internal/platform/dberr"
)

// # PostgreSQL Repository

// planRepository implements the [Repository] interface using pgx.
type planRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed lesson plan store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &planRepository{pool: pool}
}

// planColumns is the shared projection for plan hydration.
func planColumns() string {
	t := schema.LessonPlan
	return strings.Join([]string{
		t.ID, t.UserID, t.Title, t.Subject, t.GradeLevel,
		t.Duration, t.Content, t.IsPublic, t.CreatedAt, t.UpdatedAt,
	}, ", ")
}

// scanPlan hydrates one row into a Plan entity.
func scanPlan(row pgx.Row, extra ...any) (*Plan, error) {
	var plan Plan
	targets := []any{
		&plan.ID, &plan.UserID, &plan.Title, &plan.Subject, &plan.GradeLevel,
		&plan.Duration, &plan.Content, &plan.IsPublic, &plan.CreatedAt, &plan.UpdatedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &plan, nil
}

/*
Create persists a newly generated lesson plan.
*/
func (repository *planRepository) Create(context context.Context, plan *Plan) error {
	t := schema.LessonPlan

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.Table,
		t.ID, t.UserID, t.Title, t.Subject, t.GradeLevel,
		t.Duration, t.Content, t.IsPublic, t.CreatedAt, t.UpdatedAt,
	)

	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		plan.ID,
		plan.UserID,
		plan.Title,
		plan.Subject,
		plan.GradeLevel,
		plan.Duration,
		plan.Content,
		plan.IsPublic,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_lesson_create_failed: %w", err)
	}

	return nil
}

/*
FindByID returns a single lesson plan.

Returns:
  - *Plan: The hydrated entity
  - error: apperr.NotFound on absent rows
*/
func (repository *planRepository) FindByID(context context.Context, id string) (*Plan, error) {
	t := schema.LessonPlan

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, planColumns(), t.Table, t.ID)

	plan, err := scanPlan(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_lesson_plan_by_id")
	}

	return plan, nil
}

/*
ListByUser returns a page of the user's plans, newest first.

Description: Uses a COUNT window function so the total arrives in the same
round-trip.
*/
func (repository *planRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Plan, int, error) {
	t := schema.LessonPlan

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		planColumns(), t.Table, t.UserID, t.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_lesson_list_failed: %w", err)
	}
	defer rows.Close()

	var plans []*Plan
	var totalCount int

	for rows.Next() {
		plan, err := scanPlan(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_lesson_scan_failed: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, totalCount, nil
}

/*
Update overwrites a plan's mutable fields.

Returns:
  - error: apperr.NotFound if targeting a missing row
*/
func (repository *planRepository) Update(context context.Context, plan *Plan) error {
	t := schema.LessonPlan

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4`,
		t.Table,
		t.Title, t.Content, t.IsPublic, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		plan.Title,
		plan.Content,
		plan.IsPublic,
		plan.ID,
	)

	if err != nil {
		return fmt.Errorf("postgres_lesson_update_failed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("lesson plan")
	}

	return nil
}

/*
Delete removes a lesson plan.
*/
func (repository *planRepository) Delete(context context.Context, id string) error {
	t := schema.LessonPlan

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_lesson_delete_failed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("lesson plan")
	}

	return nil
}

/*
DeleteByUser removes all plans owned by a user.

Description: Zero affected rows is not an error here; a user may never have
generated a plan.
*/
func (repository *planRepository) DeleteByUser(context context.Context, userID string) error {
	t := schema.LessonPlan

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.UserID)

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_lesson_delete_by_user_failed: %w", err)
	}

	return nil
}
