// Copyright (c) 2026 TeachyAI. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teachyai/teachy/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates business logic for teacher profiles and account erasure.
type Service struct {
	profileRepository ProfileRepository
	accountRemover    AccountRemover
	sessionRevoker    SessionRevoker
	contentPurger     ContentPurger
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	profileRepo ProfileRepository,
	accountRemover AccountRemover,
	sessionRevoker SessionRevoker,
	contentPurger ContentPurger,
	logger *slog.Logger,
) *Service {
	return &Service{
		profileRepository: profileRepo,
		accountRemover:    accountRemover,
		sessionRevoker:    sessionRevoker,
		contentPurger:     contentPurger,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private profile of a teacher.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: The hydrated profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	profile, err := service.profileRepository.FindByUserID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return profile, nil
}

// UpdateProfileInput defines the mutable subset of profile fields.
//
// Nil pointers mean "leave unchanged"; a pointer to the zero value clears
// the field.
type UpdateProfileInput struct {
	FirstName       *string
	LastName        *string
	School          *string
	Subjects        []string
	FederalState    *string
	ExperienceYears *int
	Challenge       *string
	Job             *string
}

/*
UpdateProfile applies a partial set of changes to a teacher's profile.

Description: Fetches the existing state, overlays provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *Profile: The updated profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*Profile, error) {

	profile, err := service.profileRepository.FindByUserID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.School != nil {
		profile.School = input.School
	}
	if input.Subjects != nil {
		profile.Subjects = input.Subjects
	}
	if input.FederalState != nil {
		profile.FederalState = input.FederalState
	}
	if input.ExperienceYears != nil {
		profile.ExperienceYears = input.ExperienceYears
	}
	if input.Challenge != nil {
		profile.Challenge = input.Challenge
	}
	if input.Job != nil {
		profile.Job = input.Job
	}

	// Persist changes
	if err := service.profileRepository.Update(context, profile); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return profile, nil
}

// # Account Erasure

/*
DeleteProfile removes only the profile row of an account.

Description: Exposed separately because clients perform the two-phase account
deletion themselves: profile first, account second. A failed profile deletion
must leave the account untouched.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (service *Service) DeleteProfile(context context.Context, userID string) error {
	if err := service.profileRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_profile_failed: %w", err)
	}

	service.logger.Info("user_profile_deleted", slog.String("user_id", userID))

	return nil
}

/*
DeleteAccount permanently erases an account.

Description: Ordering is load-bearing — the profile row is removed before the
account row, because an orphaned auth record without profile cleanup is worse
than a failed, retryable deletion. If the profile deletion fails, the account
row is not touched and the error is surfaced. Session revocation is the final
step so the caller's credentials stay valid for error reporting up to the
point of no return.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures at whichever phase broke
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {

	// Phase 1: profile row. A NotFound here is tolerated — the client may
	// have already deleted it as its own first phase.
	if err := service.profileRepository.Delete(context, userID); err != nil {
		if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
			return fmt.Errorf("account_service_delete_account_profile_phase_failed: %w", err)
		}
	}

	// Generated content goes with the profile, still before the account row.
	if err := service.contentPurger.PurgeUser(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_account_content_phase_failed: %w", err)
	}

	// Phase 2: account row.
	if err := service.accountRemover.HardDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_account_failed: %w", err)
	}

	// Phase 3: terminate every live session.
	if err := service.sessionRevoker.RevokeAll(context, userID); err != nil {
		service.logger.Error("session_revocation_after_delete_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("user_account_deleted", slog.String("user_id", userID))

	return nil
}
