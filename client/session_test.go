// Copyright (c) 2026 TeachyAI. All rights reserved.

package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/client"
)

// fakeProvider records calls and returns scripted results.
type fakeProvider struct {
	calls []string

	registerUser  *client.User
	registerErr   error
	loginCreds    *client.Credentials
	loginErr      error
	refreshCreds  *client.Credentials
	refreshErr    error
	logoutErr     error
	delProfileErr error
	delAccountErr error
}

func (fake *fakeProvider) Register(_ context.Context, email, phone, password string, metadata client.Metadata) (*client.User, error) {
	fake.calls = append(fake.calls, "register")
	return fake.registerUser, fake.registerErr
}

func (fake *fakeProvider) Login(_ context.Context, identifier, password string) (*client.Credentials, error) {
	fake.calls = append(fake.calls, "login:"+identifier)
	return fake.loginCreds, fake.loginErr
}

func (fake *fakeProvider) Refresh(_ context.Context, refreshToken string) (*client.Credentials, error) {
	fake.calls = append(fake.calls, "refresh")
	return fake.refreshCreds, fake.refreshErr
}

func (fake *fakeProvider) Logout(_ context.Context, accessToken string) error {
	fake.calls = append(fake.calls, "logout")
	return fake.logoutErr
}

func (fake *fakeProvider) DeleteProfile(_ context.Context, accessToken string) error {
	fake.calls = append(fake.calls, "delete-profile")
	return fake.delProfileErr
}

func (fake *fakeProvider) DeleteAccount(_ context.Context, accessToken string) error {
	fake.calls = append(fake.calls, "delete-account")
	return fake.delAccountErr
}

func testCredentials() *client.Credentials {
	return &client.Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
		User:         client.User{ID: "u1", Email: "teacher@example.com", IsVerified: true},
	}
}

/*
TestSessionStore_InitialState verifies the store starts initializing and that
Init without a stored session resolves to unauthenticated.
*/
func TestSessionStore_InitialState(t *testing.T) {
	fake := &fakeProvider{}
	store := client.NewSessionStore(fake)

	assert.Equal(t, client.StateInitializing, store.State())

	state := store.Init(context.Background())
	assert.Equal(t, client.StateUnauthenticated, state)
	assert.Equal(t, client.StateUnauthenticated, store.State())

	// No stored session means no provider traffic at all.
	assert.Empty(t, fake.calls)
}

/*
TestSessionStore_SignIn verifies the authenticated transition and that phone
identifiers are normalized before the provider call.
*/
func TestSessionStore_SignIn(t *testing.T) {
	fake := &fakeProvider{loginCreds: testCredentials()}
	store := client.NewSessionStore(fake)
	store.Init(context.Background())

	credentials, err := store.SignIn(context.Background(), "01701234567", "secret")
	require.NoError(t, err)
	require.NotNil(t, credentials)

	assert.Equal(t, client.StateAuthenticated, store.State())
	assert.Equal(t, []string{"login:+491701234567"}, fake.calls)

	current := store.Current()
	require.NotNil(t, current)
	assert.Equal(t, "access", current.AccessToken)
}

/*
TestSessionStore_SignUp verifies that verified email sign-ups are signed in
immediately while phone sign-ups wait for OTP verification.
*/
func TestSessionStore_SignUp(t *testing.T) {
	t.Run("email_signs_in", func(t *testing.T) {
		fake := &fakeProvider{
			registerUser: &client.User{ID: "u1", Email: "teacher@example.com", IsVerified: true},
			loginCreds:   testCredentials(),
		}
		store := client.NewSessionStore(fake)
		store.Init(context.Background())

		user, err := store.SignUp(context.Background(), "teacher@example.com", "secret", client.Metadata{})
		require.NoError(t, err)
		assert.True(t, user.IsVerified)
		assert.Equal(t, client.StateAuthenticated, store.State())
		assert.Equal(t, []string{"register", "login:teacher@example.com"}, fake.calls)
	})

	t.Run("phone_waits_for_verification", func(t *testing.T) {
		fake := &fakeProvider{
			registerUser: &client.User{ID: "u2", Email: "491701234567@phone.teachy.app", IsVerified: false},
		}
		store := client.NewSessionStore(fake)
		store.Init(context.Background())

		user, err := store.SignUp(context.Background(), "0170 1234567", "secret", client.Metadata{})
		require.NoError(t, err)
		assert.False(t, user.IsVerified)

		// No login attempt; the user must verify the OTP first.
		assert.Equal(t, client.StateUnauthenticated, store.State())
		assert.Equal(t, []string{"register"}, fake.calls)
	})
}

/*
TestSessionStore_Subscribe verifies the immediate callback, transition
notifications, and unsubscribe.
*/
func TestSessionStore_Subscribe(t *testing.T) {
	fake := &fakeProvider{loginCreds: testCredentials()}
	store := client.NewSessionStore(fake)

	var seen []client.State
	unsubscribe := store.Subscribe(func(state client.State) {
		seen = append(seen, state)
	})

	// Immediate call with the current state.
	assert.Equal(t, []client.State{client.StateInitializing}, seen)

	store.Init(context.Background())
	_, err := store.SignIn(context.Background(), "teacher@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, []client.State{
		client.StateInitializing,
		client.StateUnauthenticated,
		client.StateAuthenticated,
	}, seen)

	unsubscribe()
	require.NoError(t, store.SignOut(context.Background()))

	// No notification after unsubscribe.
	assert.Len(t, seen, 3)
}

/*
TestSessionStore_SignOut_FailOpen verifies that a failed revocation call
still clears local state, and that the provider error is surfaced.
*/
func TestSessionStore_SignOut_FailOpen(t *testing.T) {
	providerErr := errors.New("network down")
	fake := &fakeProvider{loginCreds: testCredentials(), logoutErr: providerErr}
	store := client.NewSessionStore(fake)
	store.Init(context.Background())

	_, err := store.SignIn(context.Background(), "teacher@example.com", "secret")
	require.NoError(t, err)

	err = store.SignOut(context.Background())
	assert.ErrorIs(t, err, providerErr)

	// Local state is gone regardless of the provider failure.
	assert.Equal(t, client.StateUnauthenticated, store.State())
	assert.Nil(t, store.Current())
}

/*
TestSessionStore_SignOut_WhenSignedOut verifies sign-out is a no-op without
a session.
*/
func TestSessionStore_SignOut_WhenSignedOut(t *testing.T) {
	fake := &fakeProvider{}
	store := client.NewSessionStore(fake)
	store.Init(context.Background())

	require.NoError(t, store.SignOut(context.Background()))
	assert.NotContains(t, fake.calls, "logout")
}

/*
TestSessionStore_DeleteAccount_Ordering verifies the two-phase deletion:
profile first, account second, local sign-out last.
*/
func TestSessionStore_DeleteAccount_Ordering(t *testing.T) {
	fake := &fakeProvider{loginCreds: testCredentials()}
	store := client.NewSessionStore(fake)
	store.Init(context.Background())

	_, err := store.SignIn(context.Background(), "teacher@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, store.DeleteAccount(context.Background()))

	assert.Equal(t, []string{"login:teacher@example.com", "delete-profile", "delete-account"}, fake.calls)
	assert.Equal(t, client.StateUnauthenticated, store.State())
}

/*
TestSessionStore_DeleteAccount_ProfileFailureAborts verifies that a failed
profile deletion leaves the account untouched and the session intact.
*/
func TestSessionStore_DeleteAccount_ProfileFailureAborts(t *testing.T) {
	fake := &fakeProvider{
		loginCreds:    testCredentials(),
		delProfileErr: errors.New("storage failure"),
	}
	store := client.NewSessionStore(fake)
	store.Init(context.Background())

	_, err := store.SignIn(context.Background(), "teacher@example.com", "secret")
	require.NoError(t, err)

	err = store.DeleteAccount(context.Background())
	require.Error(t, err)

	// The account phase never ran and the user can retry.
	assert.NotContains(t, fake.calls, "delete-account")
	assert.Equal(t, client.StateAuthenticated, store.State())
	assert.NotNil(t, store.Current())
}

/*
TestSessionStore_Init_WithStoredSession verifies a persisted session is
refreshed into an authenticated slot, and a rejected refresh clears it.
*/
func TestSessionStore_Init_WithStoredSession(t *testing.T) {
	t.Run("refresh_succeeds", func(t *testing.T) {
		fake := &fakeProvider{refreshCreds: testCredentials()}
		storage := &stubStorage{stored: testCredentials()}
		store := client.NewSessionStore(fake, client.WithStorage(storage))

		state := store.Init(context.Background())
		assert.Equal(t, client.StateAuthenticated, state)
		assert.Equal(t, []string{"refresh"}, fake.calls)
	})

	t.Run("refresh_rejected", func(t *testing.T) {
		fake := &fakeProvider{refreshErr: errors.New("revoked")}
		storage := &stubStorage{stored: testCredentials()}
		store := client.NewSessionStore(fake, client.WithStorage(storage))

		state := store.Init(context.Background())
		assert.Equal(t, client.StateUnauthenticated, state)
		assert.True(t, storage.cleared)
	})
}

// stubStorage returns a scripted slot and records Clear calls.
type stubStorage struct {
	stored  *client.Credentials
	cleared bool
}

func (storage *stubStorage) Load() (*client.Credentials, error) { return storage.stored, nil }
func (storage *stubStorage) Save(*client.Credentials) error     { return nil }
func (storage *stubStorage) Clear() error {
	storage.cleared = true
	storage.stored = nil
	return nil
}
