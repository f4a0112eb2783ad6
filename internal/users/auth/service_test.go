// Copyright (c) 2026 TeachyAI. All rights reserved.

package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/users/auth"
)

// # Fakes

type fakeUserRepository struct {
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: make(map[string]*auth.User)}
}

func (fake *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range fake.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (fake *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := fake.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (fake *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	fake.byEmail[user.Email] = user
	return nil
}

func (fake *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	for _, user := range fake.byEmail {
		if user.ID == userID {
			user.PasswordHash = newHash
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (fake *fakeUserRepository) MarkVerified(_ context.Context, userID string) error {
	for _, user := range fake.byEmail {
		if user.ID == userID {
			user.IsVerified = true
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (fake *fakeUserRepository) HardDelete(_ context.Context, id string) error {
	for email, user := range fake.byEmail {
		if user.ID == id {
			delete(fake.byEmail, email)
			return nil
		}
	}
	return apperr.NotFound("User")
}

type fakeProfileCreator struct {
	created  []string
	metadata auth.SignUpMetadata
}

func (fake *fakeProfileCreator) CreateProfile(_ context.Context, userID string, metadata auth.SignUpMetadata) error {
	fake.created = append(fake.created, userID)
	fake.metadata = metadata
	return nil
}

type fakeSessionRepository struct {
	byTokenHash map[string]*auth.Session
	revokedAll  []string
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{byTokenHash: make(map[string]*auth.Session)}
}

func (fake *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	fake.byTokenHash[session.TokenHash] = session
	return nil
}

func (fake *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := fake.byTokenHash[tokenHash]
	if !ok || session.IsRevoked || session.ExpiresAt.Before(time.Now()) {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (fake *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	for _, session := range fake.byTokenHash {
		if session.ID == sessionID {
			session.IsRevoked = true
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (fake *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	fake.revokedAll = append(fake.revokedAll, userID)
	for _, session := range fake.byTokenHash {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (fake *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, session := range fake.byTokenHash {
		if session.UserID == userID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (fake *fakeSessionRepository) DeleteExpired(_ context.Context) error { return nil }

type fakeVolatileStore struct {
	values  map[string]string
	claimed map[string]bool
}

func newFakeVolatileStore() *fakeVolatileStore {
	return &fakeVolatileStore{
		values:  make(map[string]string),
		claimed: make(map[string]bool),
	}
}

func (fake *fakeVolatileStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	fake.values[key] = value
	return nil
}

func (fake *fakeVolatileStore) Get(_ context.Context, key string) (string, error) {
	value, ok := fake.values[key]
	if !ok {
		return "", apperr.NotFound("Token")
	}
	return value, nil
}

func (fake *fakeVolatileStore) Delete(_ context.Context, key string) error {
	delete(fake.values, key)
	return nil
}

func (fake *fakeVolatileStore) ClaimCooldown(_ context.Context, key string, _ time.Duration) (bool, error) {
	if fake.claimed[key] {
		return false, nil
	}
	fake.claimed[key] = true
	return true, nil
}

type fakeOTPSender struct {
	sent       map[string]string
	deliveries int
}

func newFakeOTPSender() *fakeOTPSender {
	return &fakeOTPSender{sent: make(map[string]string)}
}

func (fake *fakeOTPSender) SendCode(_ context.Context, phoneNumber, code string) error {
	fake.sent[phoneNumber] = code
	fake.deliveries++
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, email, role string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

// # Fixture

type serviceFixture struct {
	users    *fakeUserRepository
	profiles *fakeProfileCreator
	sessions *fakeSessionRepository
	otpCodes *fakeVolatileStore
	otpOut   *fakeOTPSender
	service  *auth.Service
}

func newServiceFixture() *serviceFixture {
	fixture := &serviceFixture{
		users:    newFakeUserRepository(),
		profiles: &fakeProfileCreator{},
		sessions: newFakeSessionRepository(),
		otpCodes: newFakeVolatileStore(),
		otpOut:   newFakeOTPSender(),
	}
	fixture.service = auth.NewService(
		fixture.users,
		fixture.profiles,
		fixture.sessions,
		newFakeVolatileStore(),
		fixture.otpCodes,
		fixture.otpOut,
		fakeTokenProvider{},
		slog.New(slog.DiscardHandler),
	)
	return fixture
}

// # Registration

/*
TestService_Register_Email verifies email sign-ups are verified immediately
and seed a profile row with the onboarding answers.
*/
func TestService_Register_Email(t *testing.T) {
	fixture := newServiceFixture()

	metadata := auth.SignUpMetadata{Challenge: "Zeitmanagement", Job: "Lehrer", Subjects: "Mathematik"}
	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email:    "teacher@example.com",
		Password: "secret123",
		Metadata: metadata,
	})
	require.NoError(t, err)

	assert.True(t, user.IsVerified)
	assert.Equal(t, "teacher@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	// Profile row seeded verbatim.
	assert.Equal(t, []string{user.ID}, fixture.profiles.created)
	assert.Equal(t, metadata, fixture.profiles.metadata)

	// No OTP traffic for email accounts.
	assert.Empty(t, fixture.otpOut.sent)
}

/*
TestService_Register_Phone verifies phone sign-ups map to the synthetic
email, start unverified, and trigger OTP delivery.
*/
func TestService_Register_Phone(t *testing.T) {
	fixture := newServiceFixture()

	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Phone:    "0170 1234567",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.False(t, user.IsVerified)
	assert.Equal(t, "+491701234567", user.Phone)
	assert.Equal(t, "491701234567@phone.teachy.app", user.Email)

	// OTP was stored and sent to the normalized number.
	code, sent := fixture.otpOut.sent["+491701234567"]
	assert.True(t, sent)
	assert.Len(t, code, 6)
}

/*
TestService_RequestOTP_ResendCooldown verifies that repeat deliveries to the
same number inside the cooldown window are refused.
*/
func TestService_RequestOTP_ResendCooldown(t *testing.T) {
	fixture := newServiceFixture()

	// Registration triggers the first delivery and claims the slot.
	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Phone:    "0170 1234567",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fixture.otpOut.deliveries)

	firstCode := fixture.otpOut.sent["+491701234567"]

	// Immediate resend is refused and nothing else goes out.
	err = fixture.service.RequestOTP(context.Background(), "0170 1234567")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "RATE_LIMITED", appError.Code)
	assert.Equal(t, 1, fixture.otpOut.deliveries)

	// The pending code survives the refused resend.
	pending, err := fixture.otpCodes.Get(context.Background(), "+491701234567")
	require.NoError(t, err)
	assert.Equal(t, firstCode, pending)

	// A different number is unaffected.
	require.NoError(t, fixture.service.RequestOTP(context.Background(), "0151 7654321"))
	assert.Equal(t, 2, fixture.otpOut.deliveries)
}

/*
TestService_Register_DuplicateEmail verifies the conflict error.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	fixture := newServiceFixture()

	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email: "teacher@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = fixture.service.Register(context.Background(), auth.RegisterInput{
		Email: "teacher@example.com", Password: "other456",
	})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

// # Authentication

/*
TestService_Login verifies the credential checks and the issued session.
*/
func TestService_Login(t *testing.T) {
	fixture := newServiceFixture()
	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email: "teacher@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Identifier: "teacher@example.com", Password: "secret123",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))
		assert.Len(t, fixture.sessions.byTokenHash, 1)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Identifier: "teacher@example.com", Password: "wrong",
		})
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})

	t.Run("unknown_identifier_same_error", func(t *testing.T) {
		_, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Identifier: "nobody@example.com", Password: "secret123",
		})
		appError := apperr.As(err)
		require.NotNil(t, appError)

		// Anti-enumeration: indistinguishable from a wrong password.
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})
}

/*
TestService_Login_PhoneIdentifier verifies phone logins resolve through the
synthetic email and unverified accounts are rejected with a dedicated code.
*/
func TestService_Login_PhoneIdentifier(t *testing.T) {
	fixture := newServiceFixture()
	user, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Phone: "01701234567", Password: "secret123",
	})
	require.NoError(t, err)

	// Unverified phone account cannot log in yet.
	_, err = fixture.service.Login(context.Background(), auth.LoginInput{
		Identifier: "0170 1234567", Password: "secret123",
	})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "EMAIL_NOT_CONFIRMED", appError.Code)

	// Complete verification with the delivered code.
	code := fixture.otpOut.sent["+491701234567"]
	require.NoError(t, fixture.service.VerifyOTP(context.Background(), "01701234567", code))

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Identifier: "0170 1234567", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
}

/*
TestService_VerifyOTP_WrongCode verifies a mismatching code is rejected and
the account stays unverified.
*/
func TestService_VerifyOTP_WrongCode(t *testing.T) {
	fixture := newServiceFixture()
	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Phone: "01701234567", Password: "secret123",
	})
	require.NoError(t, err)

	err = fixture.service.VerifyOTP(context.Background(), "01701234567", "000000")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)

	user, err := fixture.users.FindByEmail(context.Background(), "491701234567@phone.teachy.app")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
}

// # Session Lifecycle

/*
TestService_Logout verifies revocation and idempotency.
*/
func TestService_Logout(t *testing.T) {
	fixture := newServiceFixture()
	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email: "teacher@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Identifier: "teacher@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))

	// The refresh token is dead now.
	_, err = fixture.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)

	// A second logout with the same token is a no-op, not an error.
	assert.NoError(t, fixture.service.Logout(context.Background(), session.RefreshToken))
}

/*
TestService_RefreshSession verifies rotation: the old token dies, the new
one works.
*/
func TestService_RefreshSession(t *testing.T) {
	fixture := newServiceFixture()
	_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
		Email: "teacher@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Identifier: "teacher@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	rotated, err := fixture.service.RefreshSession(context.Background(), session.RefreshToken, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The original token no longer refreshes.
	_, err = fixture.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)

	// The rotated one does.
	_, err = fixture.service.RefreshSession(context.Background(), rotated.RefreshToken, "", "")
	assert.NoError(t, err)
}
