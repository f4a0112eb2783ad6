// Copyright (c) 2026 TeachyAI. All rights reserved.

package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/teachyai/teachy/pkg/phone"
)

// # Auth State Machine

// State is the session store's authentication state.
type State string

const (
	// StateInitializing is entered exactly once, while the first lookup of a
	// persisted session resolves. UIs show a splash screen here.
	StateInitializing State = "initializing"

	// StateAuthenticated means the slot holds live credentials.
	StateAuthenticated State = "authenticated"

	// StateUnauthenticated means the slot is empty.
	StateUnauthenticated State = "unauthenticated"
)

// # Provider Contract

// Provider is the API surface the session store drives. *Client implements
// it; tests substitute fakes.
type Provider interface {
	Register(context context.Context, email, phone, password string, metadata Metadata) (*User, error)
	Login(context context.Context, identifier, password string) (*Credentials, error)
	Refresh(context context.Context, refreshToken string) (*Credentials, error)
	Logout(context context.Context, accessToken string) error
	DeleteProfile(context context.Context, accessToken string) error
	DeleteAccount(context context.Context, accessToken string) error
}

// CredentialStorage persists the session slot across process restarts.
// Load returns (nil, nil) when nothing is stored.
type CredentialStorage interface {
	Load() (*Credentials, error)
	Save(credentials *Credentials) error
	Clear() error
}

// memoryStorage is the default, process-lifetime storage.
type memoryStorage struct {
	mu          sync.Mutex
	credentials *Credentials
}

func (storage *memoryStorage) Load() (*Credentials, error) {
	storage.mu.Lock()
	defer storage.mu.Unlock()
	return storage.credentials, nil
}

func (storage *memoryStorage) Save(credentials *Credentials) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()
	storage.credentials = credentials
	return nil
}

func (storage *memoryStorage) Clear() error {
	storage.mu.Lock()
	defer storage.mu.Unlock()
	storage.credentials = nil
	return nil
}

// # Session Store

// SessionStore owns the device's single session slot.
//
// All operations are safe for concurrent use. Subscribers are notified on
// every state transition; the slot itself is last-write-wins, so an
// out-of-band refresh simply replaces the current credentials.
type SessionStore struct {
	provider Provider
	storage  CredentialStorage

	mu          sync.Mutex
	state       State
	credentials *Credentials
	subscribers map[int]func(State)
	nextID      int
}

// StoreOption customizes a SessionStore.
type StoreOption func(*SessionStore)

// WithStorage injects persistent credential storage (keychain, file).
func WithStorage(storage CredentialStorage) StoreOption {
	return func(store *SessionStore) { store.storage = storage }
}

// NewSessionStore constructs a store in the initializing state. Call [Init]
// to resolve it.
func NewSessionStore(provider Provider, options ...StoreOption) *SessionStore {
	store := &SessionStore{
		provider:    provider,
		storage:     &memoryStorage{},
		state:       StateInitializing,
		subscribers: make(map[int]func(State)),
	}
	for _, option := range options {
		option(store)
	}
	return store
}

// State returns the current authentication state.
func (store *SessionStore) State() State {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state
}

// Current returns a copy of the slot's credentials, or nil when signed out.
func (store *SessionStore) Current() *Credentials {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.credentials == nil {
		return nil
	}
	copied := *store.credentials
	return &copied
}

/*
Subscribe registers a callback invoked on every state transition.

Description: The callback fires immediately with the current state so
subscribers never start stale, then on each transition. The returned
function unsubscribes; it is safe to call more than once.
*/
func (store *SessionStore) Subscribe(callback func(State)) (unsubscribe func()) {
	store.mu.Lock()
	id := store.nextID
	store.nextID++
	store.subscribers[id] = callback
	current := store.state
	store.mu.Unlock()

	callback(current)

	return func() {
		store.mu.Lock()
		defer store.mu.Unlock()
		delete(store.subscribers, id)
	}
}

// setState transitions the store and notifies subscribers outside the lock.
func (store *SessionStore) setState(state State, credentials *Credentials) {
	store.mu.Lock()
	store.state = state
	store.credentials = credentials
	callbacks := make([]func(State), 0, len(store.subscribers))
	for _, callback := range store.subscribers {
		callbacks = append(callbacks, callback)
	}
	store.mu.Unlock()

	for _, callback := range callbacks {
		callback(state)
	}
}

/*
Init resolves the initializing state.

Description: Loads any persisted credentials and attempts a refresh so the
first authenticated screen starts with a fresh access token. Any failure
(no stored session, rejected refresh, network down) resolves to
unauthenticated; Init never blocks the app on an error.
*/
func (store *SessionStore) Init(context context.Context) State {
	stored, err := store.storage.Load()
	if err != nil || stored == nil {
		store.setState(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	refreshed, err := store.provider.Refresh(context, stored.RefreshToken)
	if err != nil {
		_ = store.storage.Clear()
		store.setState(StateUnauthenticated, nil)
		return StateUnauthenticated
	}

	_ = store.storage.Save(refreshed)
	store.setState(StateAuthenticated, refreshed)
	return StateAuthenticated
}

// # Session Operations

/*
SignUp registers a new account and signs it in.

Description: An identifier containing only digits (with optional separators)
is treated as a phone number: it is normalized to +49 form and registered as
a phone account, which stays unverified until the OTP flow completes — in
that case the store remains unauthenticated and the user is returned for the
verification screen. Email sign-ups are signed in immediately.
*/
func (store *SessionStore) SignUp(context context.Context, identifier, password string, metadata Metadata) (*User, error) {
	var email, phoneNumber string

	if phone.IsPhone(identifier) {
		phoneNumber = phone.Normalize(identifier)
	} else {
		email = identifier
	}

	user, err := store.provider.Register(context, email, phoneNumber, password, metadata)
	if err != nil {
		return nil, fmt.Errorf("session_sign_up_failed: %w", err)
	}

	// Phone accounts cannot log in before OTP verification.
	if !user.IsVerified {
		return user, nil
	}

	if _, err := store.signIn(context, email, password); err != nil {
		return user, err
	}

	return user, nil
}

/*
SignIn authenticates with an email or phone identifier.

Description: Phone identifiers are normalized to their +49 form before the
provider call; the server maps them onto the synthetic account email.
*/
func (store *SessionStore) SignIn(context context.Context, identifier, password string) (*Credentials, error) {
	if phone.IsPhone(identifier) {
		identifier = phone.Normalize(identifier)
	}

	return store.signIn(context, identifier, password)
}

func (store *SessionStore) signIn(context context.Context, identifier, password string) (*Credentials, error) {
	credentials, err := store.provider.Login(context, identifier, password)
	if err != nil {
		return nil, err
	}

	_ = store.storage.Save(credentials)
	store.setState(StateAuthenticated, credentials)
	return credentials, nil
}

/*
SignOut terminates the session.

Description: Fail-open — local state always goes unauthenticated and stored
credentials are cleared, even when the revocation call fails (offline
device, expired token). The provider error is still returned so callers can
log it.
*/
func (store *SessionStore) SignOut(context context.Context) error {
	current := store.Current()

	var err error
	if current != nil {
		err = store.provider.Logout(context, current.AccessToken)
	}

	_ = store.storage.Clear()
	store.setState(StateUnauthenticated, nil)

	return err
}

/*
DeleteAccount permanently erases the signed-in account.

Description: Ordering is load-bearing — the profile row is deleted first; if
that fails the account row is never touched and the session stays intact so
the user can retry. Only after both server phases succeed does the store
sign out locally.
*/
func (store *SessionStore) DeleteAccount(context context.Context) error {
	current := store.Current()
	if current == nil {
		return fmt.Errorf("session_delete_account_not_signed_in")
	}

	// Phase 1: profile row. Abort on failure.
	if err := store.provider.DeleteProfile(context, current.AccessToken); err != nil {
		return fmt.Errorf("session_delete_account_profile_phase_failed: %w", err)
	}

	// Phase 2: account row.
	if err := store.provider.DeleteAccount(context, current.AccessToken); err != nil {
		return fmt.Errorf("session_delete_account_failed: %w", err)
	}

	// Final step: local sign-out. The server already revoked the sessions.
	_ = store.storage.Clear()
	store.setState(StateUnauthenticated, nil)

	return nil
}

/*
Refresh rotates the slot's refresh token. Out-of-band refreshes replace the
slot last-write-wins; subscribers are only notified when the state itself
changes, not on a token swap.
*/
func (store *SessionStore) Refresh(context context.Context) (*Credentials, error) {
	current := store.Current()
	if current == nil {
		return nil, fmt.Errorf("session_refresh_not_signed_in")
	}

	refreshed, err := store.provider.Refresh(context, current.RefreshToken)
	if err != nil {
		// A rejected refresh means the session is gone server-side.
		_ = store.storage.Clear()
		store.setState(StateUnauthenticated, nil)
		return nil, fmt.Errorf("session_refresh_failed: %w", err)
	}

	_ = store.storage.Save(refreshed)

	store.mu.Lock()
	store.credentials = refreshed
	store.mu.Unlock()

	return refreshed, nil
}
