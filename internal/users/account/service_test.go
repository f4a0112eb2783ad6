// Copyright (c) 2026 TeachyAI. All rights reserved.

package account_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/users/account"
)

// orderedFakes share a call log so tests can assert cross-dependency ordering.
type callLog struct {
	calls []string
}

type fakeProfileRepository struct {
	log       *callLog
	profile   *account.Profile
	deleteErr error
}

func (fake *fakeProfileRepository) FindByUserID(_ context.Context, userID string) (*account.Profile, error) {
	if fake.profile == nil {
		return nil, apperr.NotFound("Profile")
	}
	copied := *fake.profile
	return &copied, nil
}

func (fake *fakeProfileRepository) Update(_ context.Context, profile *account.Profile) error {
	fake.profile = profile
	return nil
}

func (fake *fakeProfileRepository) Delete(_ context.Context, userID string) error {
	fake.log.calls = append(fake.log.calls, "profile-delete")
	return fake.deleteErr
}

type fakeAccountRemover struct {
	log *callLog
	err error
}

func (fake *fakeAccountRemover) HardDelete(_ context.Context, id string) error {
	fake.log.calls = append(fake.log.calls, "account-delete")
	return fake.err
}

type fakeSessionRevoker struct {
	log *callLog
	err error
}

func (fake *fakeSessionRevoker) RevokeAll(_ context.Context, userID string) error {
	fake.log.calls = append(fake.log.calls, "revoke-all")
	return fake.err
}

type fakeContentPurger struct {
	log *callLog
	err error
}

func (fake *fakeContentPurger) PurgeUser(_ context.Context, userID string) error {
	fake.log.calls = append(fake.log.calls, "purge-content")
	return fake.err
}

type deletionFixture struct {
	log     *callLog
	profile *fakeProfileRepository
	remover *fakeAccountRemover
	revoker *fakeSessionRevoker
	purger  *fakeContentPurger
	service *account.Service
}

func newDeletionFixture() *deletionFixture {
	log := &callLog{}
	fixture := &deletionFixture{
		log:     log,
		profile: &fakeProfileRepository{log: log},
		remover: &fakeAccountRemover{log: log},
		revoker: &fakeSessionRevoker{log: log},
		purger:  &fakeContentPurger{log: log},
	}
	fixture.service = account.NewService(
		fixture.profile,
		fixture.remover,
		fixture.revoker,
		fixture.purger,
		slog.New(slog.DiscardHandler),
	)
	return fixture
}

/*
TestService_DeleteAccount_Ordering verifies the erasure phases run in order:
profile, generated content, account row, session revocation.
*/
func TestService_DeleteAccount_Ordering(t *testing.T) {
	fixture := newDeletionFixture()

	require.NoError(t, fixture.service.DeleteAccount(context.Background(), "u1"))

	assert.Equal(t, []string{"profile-delete", "purge-content", "account-delete", "revoke-all"}, fixture.log.calls)
}

/*
TestService_DeleteAccount_ProfileFailureAborts verifies a failed profile
deletion leaves the account row untouched.
*/
func TestService_DeleteAccount_ProfileFailureAborts(t *testing.T) {
	fixture := newDeletionFixture()
	fixture.profile.deleteErr = errors.New("storage failure")

	err := fixture.service.DeleteAccount(context.Background(), "u1")
	require.Error(t, err)

	assert.NotContains(t, fixture.log.calls, "account-delete")
	assert.NotContains(t, fixture.log.calls, "revoke-all")
}

/*
TestService_DeleteAccount_ToleratesMissingProfile verifies a client that
already deleted its profile row can still complete the account phase.
*/
func TestService_DeleteAccount_ToleratesMissingProfile(t *testing.T) {
	fixture := newDeletionFixture()
	fixture.profile.deleteErr = apperr.NotFound("Profile")

	require.NoError(t, fixture.service.DeleteAccount(context.Background(), "u1"))
	assert.Contains(t, fixture.log.calls, "account-delete")
}

/*
TestService_DeleteAccount_RevocationFailureTolerated verifies a failed
session revocation after the point of no return does not fail the call.
*/
func TestService_DeleteAccount_RevocationFailureTolerated(t *testing.T) {
	fixture := newDeletionFixture()
	fixture.revoker.err = errors.New("redis down")

	assert.NoError(t, fixture.service.DeleteAccount(context.Background(), "u1"))
}

/*
TestService_UpdateProfile verifies the nil-means-unchanged overlay.
*/
func TestService_UpdateProfile(t *testing.T) {
	fixture := newDeletionFixture()
	school := "Goethe-Gymnasium"
	fixture.profile.profile = &account.Profile{
		UserID:    "u1",
		FirstName: "Anna",
		LastName:  "Schmidt",
		School:    &school,
		Subjects:  []string{"Mathematik"},
	}

	newFirst := "Anne"
	years := 5
	updated, err := fixture.service.UpdateProfile(context.Background(), "u1", account.UpdateProfileInput{
		FirstName:       &newFirst,
		ExperienceYears: &years,
	})
	require.NoError(t, err)

	assert.Equal(t, "Anne", updated.FirstName)
	assert.Equal(t, "Schmidt", updated.LastName)
	require.NotNil(t, updated.School)
	assert.Equal(t, "Goethe-Gymnasium", *updated.School)
	require.NotNil(t, updated.ExperienceYears)
	assert.Equal(t, 5, *updated.ExperienceYears)
}
