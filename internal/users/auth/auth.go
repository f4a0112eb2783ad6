// Copyright (c) 2026 TeachyAI. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for
authentication, phone verification, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/teachyai/teachy/internal/platform/sec"
)

// # Domain Entities

// User represents a registered teacher account.
//
// Phone sign-ups are stored under a synthetic email address
// (<digits>@phone.teachy.app), so Email is always populated even for
// phone-only accounts. The original phone number is kept alongside for
// OTP delivery.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Phone        string       `json:"phone,omitempty"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"is_verified"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// SignUpMetadata carries the onboarding answers attached to a registration.
//
// The three fields mirror the onboarding questionnaire: the challenge the
// teacher wants help with, their job role, and the subjects they teach
// (comma-joined). All are optional free-form strings and are copied verbatim
// into the profile row.
type SignUpMetadata struct {
	Challenge string `json:"challenge,omitempty"`
	Job       string `json:"job,omitempty"`
	Subjects  string `json:"subjects,omitempty"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldPassword        = "password"
	FieldIdentifier      = "identifier"
	FieldToken           = "token"
	FieldCode            = "code"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldRefreshToken    = "refresh_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldExpiresAt       = "expires_at"
	FieldUser            = "user"
	FieldMessage         = "message"
)
