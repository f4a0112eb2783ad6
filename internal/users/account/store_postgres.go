// Copyright (c) 2026 TeachyAI. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/users/auth"
	"github.com/teachyai/teachy/pkg/query"
)

// # Profile Repository

// PostgresProfileRepository implements [ProfileRepository] using pgx.
//
// It also implements [auth.ProfileCreator], so the auth service can seed the
// profile row during registration without importing this package's service.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL implementation of the ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

/*
CreateProfile seeds the initial profile row for a freshly registered account.

Description: Implements [auth.ProfileCreator]. The onboarding answers are
copied verbatim; the comma-joined subjects string is split into the text[]
column.

Parameters:
  - context: context.Context
  - userID: string
  - metadata: auth.SignUpMetadata

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresProfileRepository) CreateProfile(context context.Context, userID string, metadata auth.SignUpMetadata) error {
	const sql = `
		INSERT INTO users.profile (
			userid, firstname, lastname, subjects, challenge, job, createdat, updatedat
		) VALUES ($1, '', '', $2, NULLIF($3, ''), NULLIF($4, ''), $5, $5)`

	_, err := repository.pool.Exec(context, sql,
		userID,
		query.StringSlice(metadata.Subjects),
		metadata.Challenge,
		metadata.Job,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("postgres_profile_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByUserID retrieves the profile row for an account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresProfileRepository) FindByUserID(context context.Context, userID string) (*Profile, error) {
	const sql = `
		SELECT userid, firstname, lastname, school, subjects, federalstate,
		       experienceyears, challenge, job, createdat, updatedat
		FROM users.profile
		WHERE userid = $1`

	profile := &Profile{}
	err := repository.pool.QueryRow(context, sql, userID).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.School,
		&profile.Subjects,
		&profile.FederalState,
		&profile.ExperienceYears,
		&profile.Challenge,
		&profile.Job,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Profile")
		}
		return nil, fmt.Errorf("postgres_profile_repo_find_failed: %w", err)
	}

	return profile, nil
}

/*
Update persists the mutable profile fields.

Parameters:
  - context: context.Context
  - profile: *Profile

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresProfileRepository) Update(context context.Context, profile *Profile) error {
	const sql = `
		UPDATE users.profile
		SET firstname = $2, lastname = $3, school = $4, subjects = $5,
		    federalstate = $6, experienceyears = $7, challenge = $8, job = $9,
		    updatedat = NOW()
		WHERE userid = $1`

	tag, err := repository.pool.Exec(context, sql,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.School,
		profile.Subjects,
		profile.FederalState,
		profile.ExperienceYears,
		profile.Challenge,
		profile.Job,
	)

	if err != nil {
		return fmt.Errorf("postgres_profile_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profile")
	}

	return nil
}

/*
Delete removes the profile row entirely.

Description: Returns apperr.NotFound when no row existed, letting callers
distinguish "already gone" from a real failure — the account deletion
ordering depends on that distinction.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresProfileRepository) Delete(context context.Context, userID string) error {
	const sql = `DELETE FROM users.profile WHERE userid = $1`

	tag, err := repository.pool.Exec(context, sql, userID)
	if err != nil {
		return fmt.Errorf("postgres_profile_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profile")
	}

	return nil
}
