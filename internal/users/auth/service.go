// Copyright (c) 2026 TeachyAI. All rights reserved.

/*
Package auth implements the core identity and access management system.

It handles everything from registration and secure password hashing to session
lifecycle management via JWT and refresh tokens, plus phone verification with
one-time passcodes (stored in Redis).

Architecture:

  - Service: Orchestrates business logic (Register, Login, OTP verification).
  - Repository: Abstracted interfaces for Postgres (Users, Sessions) and Redis (OTP, reset tokens).
  - Security: Leverages bcrypt and RSA-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/platform/constants"
	"github.com/teachyai/teachy/internal/platform/sec"
	"github.com/teachyai/teachy/pkg/phone"
	"github.com/teachyai/teachy/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The login email of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// OTPSender delivers a one-time passcode to a phone number.
//
// The production implementation is an SMS gateway; tests and development use
// a logger-backed sender.
type OTPSender interface {
	SendCode(context context.Context, phoneNumber, code string) error
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository       UserRepository
	profileCreator       ProfileCreator
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	otpCodeRepository    OTPCodeRepository
	otpSender            OTPSender
	tokenProvider        TokenProvider
	logger               *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	profileCreator ProfileCreator,
	sessionRepo SessionRepository,
	resetRepo ResetTokenRepository,
	otpRepo OTPCodeRepository,
	otpSender OTPSender,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:       userRepo,
		profileCreator:       profileCreator,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetRepo,
		otpCodeRepository:    otpRepo,
		otpSender:            otpSender,
		tokenProvider:        tokenProv,
		logger:               logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new teacher.
//
// Exactly one of Email or Phone must be set. Phone registrations are stored
// under a synthetic email address and start unverified until the OTP flow
// completes.
type RegisterInput struct {
	Email    string
	Phone    string
	Password string
	Metadata SignUpMetadata
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new teacher, handling password hashing,
phone-to-email mapping, and the initial profile row carrying the onboarding
answers verbatim.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	email := input.Email
	normalizedPhone := ""

	// Phone registrations map onto the email-centric account store.
	if input.Phone != "" {
		normalizedPhone = phone.Normalize(input.Phone)
		email = phone.ToEmail(normalizedPhone, constants.PhoneEmailDomain)
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("An account with this email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	// Email accounts are considered confirmed on creation (server-side email
	// confirmation is delegated to the delivery provider); phone accounts stay
	// unverified until the OTP flow completes.
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        normalizedPhone,
		Role:         sec.RoleTeacher,
		IsVerified:   normalizedPhone == "",
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// Seed the profile row with the onboarding answers. A missing profile row
	// would break the content screens, so this failure is not swallowed.
	if err := service.profileCreator.CreateProfile(context, user.ID, input.Metadata); err != nil {
		return nil, fmt.Errorf("auth_service_profile_seed_failed: %w", err)
	}

	// Kick off phone verification as a registration side effect.
	if normalizedPhone != "" {
		if err := service.RequestOTP(context, normalizedPhone); err != nil {
			service.logger.Warn("otp_request_after_register_failed",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Identifier string // Email address or phone number
	Password   string
	UserAgent  string
	IPAddress  string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and initializes a new session with rotated security tokens. Phone identifiers
are normalized and resolved through their synthetic email address.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized, Unconfirmed, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	email := input.Identifier
	if phone.IsPhone(input.Identifier) {
		email = phone.ToEmail(phone.Normalize(input.Identifier), constants.PhoneEmailDomain)
	}

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Unverified phone accounts must finish the OTP flow first. Surfaced with
	// a dedicated code so clients can route to the verification screen.
	if !user.IsVerified {
		return nil, apperr.Unconfirmed("Account not verified yet")
	}

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Create and persist the tracking session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	// Hash the refresh token
	tokenHash := sec.HashToken(refreshToken)

	// Find the session by token hash
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) session is already gone or invalid, we consider logout successful (idempotent operation).
	if err != nil {
		return nil
	}

	// If (err == nil) Revoke the session
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {

	// Hash the incoming refresh token to look it up
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) the token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: Revoke the old session to prevent replay attacks
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// Fetch the user associated with this session
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	// Generate a fresh Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	// Generate a fresh Refresh Token for the rotation
	newRefreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_secure_token_failed: %w", err)
	}

	// Persist the new session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	newSession := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(newRefreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, newSession); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Phone Verification (OTP)

/*
RequestOTP generates and delivers a one-time passcode to a phone number.

Description: Stores the code in Redis keyed by the normalized number (a new
request invalidates any previous code) and hands it to the SMS gateway.
Deliveries to the same number are limited to one per [OTPResendCooldown].

Parameters:
  - context: context.Context
  - phoneNumber: string

Returns:
  - err: apperr.RateLimited inside the cooldown window; generation, storage,
    or delivery failures otherwise
*/
func (service *Service) RequestOTP(context context.Context, phoneNumber string) error {

	normalized := phone.Normalize(phoneNumber)
	if normalized == "" {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldPhone,
			Message: "Must be a valid phone number",
		})
	}

	// Cooldown gate: one delivery per number per window.
	allowed, err := service.otpCodeRepository.ClaimCooldown(context, normalized, OTPResendCooldown)
	if err != nil {
		return fmt.Errorf("auth_service_otp_cooldown_failed: %w", err)
	}
	if !allowed {
		return apperr.RateLimited(int(OTPResendCooldown / time.Second))
	}

	code, err := sec.GenerateOTPCode()
	if err != nil {
		return fmt.Errorf("auth_service_otp_generate_failed: %w", err)
	}

	if err := service.otpCodeRepository.Set(context, normalized, code, OTPCodeTTL); err != nil {
		return fmt.Errorf("auth_service_otp_store_failed: %w", err)
	}

	if err := service.otpSender.SendCode(context, normalized, code); err != nil {
		return fmt.Errorf("auth_service_otp_send_failed: %w", err)
	}

	return nil
}

/*
VerifyOTP confirms phone ownership using a previously delivered passcode.

Description: Compares the submitted code against the pending one, marks the
account verified, and burns the code.

Parameters:
  - context: context.Context
  - phoneNumber: string
  - code: string

Returns:
  - err: Unauthorized on mismatch, storage failures otherwise
*/
func (service *Service) VerifyOTP(context context.Context, phoneNumber, code string) error {

	normalized := phone.Normalize(phoneNumber)

	pending, err := service.otpCodeRepository.Get(context, normalized)
	if err != nil {
		return apperr.Unauthorized("Verification code is invalid or expired")
	}

	if pending != code {
		return apperr.Unauthorized("Verification code is invalid or expired")
	}

	// Resolve the account through its synthetic email address.
	email := phone.ToEmail(normalized, constants.PhoneEmailDomain)
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return apperr.NotFound("Account")
	}

	if err := service.userRepository.MarkVerified(context, user.ID); err != nil {
		return fmt.Errorf("auth_service_verify_otp_failed: %w", err)
	}

	// Cleanup the used code from Redis
	_ = service.otpCodeRepository.Delete(context, normalized)

	return nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves it to Redis.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Discovery token
  - err: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// Look up user.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	// Generate reset token
	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// Save to Redis
	if err := service.resetTokenRepository.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, updates the DB,
and revokes all active sessions for security cleanup.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	// Retrieve the userID associated with the reset token from Redis
	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the user's password in persistent storage
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Security Cleanup: Revoke EVERY active session for this user
	_ = service.sessionRepository.RevokeAll(context, userID)

	// Delete the used token from Redis
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password and then rotates all OTHER refresh
sessions to ensure high security across devices.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string
  - currentRefreshToken: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	// Security Side Effect: Revoke all other sessions to force re-login on other devices
	tokenHash := sec.HashToken(currentRefreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err == nil {
		_ = service.sessionRepository.RevokeOthers(context, userID, session.ID)
	}

	return nil
}
