// Copyright (c) 2026 TeachyAI. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience on mobile.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// OTPCodeTTL is the duration a phone verification code remains valid.
	// Codes are typed in during the verification screen, so 10 minutes is ample.
	OTPCodeTTL = 10 * time.Minute

	// OTPResendCooldown is the minimum gap between two OTP deliveries
	// to the same number, preventing SMS flooding.
	OTPResendCooldown = 60 * time.Second
)
