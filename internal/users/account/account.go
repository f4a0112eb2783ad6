// Copyright (c) 2026 TeachyAI. All rights reserved.

/*
Package account manages teacher profiles and account lifecycle.

It owns the users.profile table (the row every content screen joins against)
and the destructive end of the account lifecycle: profile deletion and full
account erasure, in that order.

# Architecture

  - Service: Orchestrates profile reads/updates and the two-step deletion.
  - Repository: Postgres access for profile rows; session/user access is
    borrowed from the auth domain through narrow interfaces.
*/
package account

import (
	"context"
	"time"
)

// # Domain Entities

// Profile holds the teacher-facing attributes of an account.
//
// Challenge, Job, and Subjects arrive verbatim from the onboarding
// questionnaire at sign-up time and remain editable afterwards.
type Profile struct {
	UserID          string    `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	School          *string   `json:"school"`
	Subjects        []string  `json:"subjects"`
	FederalState    *string   `json:"federal_state"`
	ExperienceYears *int      `json:"experience_years"`
	Challenge       *string   `json:"challenge"`
	Job             *string   `json:"job"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// # Data Access Contracts

// ProfileRepository defines the data access contract for profile rows.
type ProfileRepository interface {

	/*
		FindByUserID returns the profile belonging to an account.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Profile: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByUserID(context context.Context, userID string) (*Profile, error)

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - profile: *Profile

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, profile *Profile) error

	/*
		Delete removes the profile row entirely.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID string) error
}

// AccountRemover is the slice of the auth user repository needed to erase
// the account row after the profile is gone.
type AccountRemover interface {
	HardDelete(context context.Context, id string) error
}

// SessionRevoker terminates every live session for a user.
type SessionRevoker interface {
	RevokeAll(context context.Context, userID string) error
}

// ContentPurger removes user-generated content (lesson plans) during
// account erasure.
type ContentPurger interface {
	PurgeUser(context context.Context, userID string) error
}

// # Field Identifiers

const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldSchool          = "school"
	FieldSubjects        = "subjects"
	FieldFederalState    = "federal_state"
	FieldExperienceYears = "experience_years"
	FieldChallenge       = "challenge"
	FieldJob             = "job"
	FieldMessage         = "message"
)
