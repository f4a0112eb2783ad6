// Copyright (c) 2026 TeachyAI. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
)

// # Opaque Tokens

// GenerateSecureToken returns a URL-safe random token of the given byte length.
//
// It is used for refresh tokens and password reset tokens. The returned string
// is base64url-encoded, so its character length exceeds byteLength.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Only the digest is ever persisted; the plain token exists solely on the
// client. SHA-256 is sufficient here because the input is high-entropy random
// data, not a human-chosen password.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// # One-Time Passcodes

// OTPCodeLength is the digit count of phone verification codes.
const OTPCodeLength = 6

// GenerateOTPCode returns a zero-padded numeric one-time passcode.
//
// crypto/rand is used rather than math/rand: OTP codes are short-lived but
// guessable codes would allow account takeover during the verification window.
func GenerateOTPCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < OTPCodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate otp code: %w", err)
	}

	return fmt.Sprintf("%0*d", OTPCodeLength, n), nil
}
