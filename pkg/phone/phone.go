// Copyright (c) 2026 TeachyAI. All rights reserved.

/*
Package phone normalizes phone numbers for login identifiers.

The account store is email-centric, so phone sign-ins are mapped onto a
synthetic address of the form <digits>@phone.<domain>. Normalization is
deliberately minimal: strip formatting, ensure a country code, nothing more.
Carrier-level validation belongs to the OTP delivery provider.
*/
package phone

import "strings"

// DefaultCountryCode is prepended to numbers that carry no country code.
// The platform launched in Germany, so local numbers are treated as German.
const DefaultCountryCode = "+49"

// Normalize converts a raw phone input into E.164-like form.
//
// # Rules
//
//  1. All non-digit characters are stripped (spaces, dashes, parentheses).
//  2. A leading "00" international prefix becomes "+".
//  3. Numbers already carrying the default country code keep it — the
//     operation is idempotent.
//  4. A single leading zero (national dialing) is dropped before the country
//     code is prepended: "0170..." → "+49170...".
//
// An empty input returns an empty string.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	hasPlus := strings.HasPrefix(trimmed, "+")
	digits := stripNonDigits(trimmed)
	if digits == "" {
		return ""
	}

	// "00" prefix is the textual form of "+".
	if !hasPlus && strings.HasPrefix(digits, "00") {
		hasPlus = true
		digits = digits[2:]
	}

	if hasPlus {
		return "+" + digits
	}

	// Already carries the default country code without the plus sign.
	if strings.HasPrefix(digits, DefaultCountryCode[1:]) {
		return "+" + digits
	}

	// National dialing format: drop the trunk zero.
	digits = strings.TrimPrefix(digits, "0")

	return DefaultCountryCode + digits
}

// IsPhone reports whether the identifier looks like a phone number rather
// than an email address. Anything containing '@' is treated as email.
func IsPhone(identifier string) bool {
	if strings.Contains(identifier, "@") {
		return false
	}
	return stripNonDigits(identifier) != ""
}

// ToEmail maps a normalized phone number onto the synthetic email address
// understood by the account store: the leading '+' is dropped so the local
// part stays RFC-safe.
func ToEmail(normalized, domain string) string {
	return strings.TrimPrefix(normalized, "+") + "@" + domain
}

// stripNonDigits removes every rune outside '0'..'9'.
func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
