// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// # One-Time Codes & Identity Normalization

// codeRange is the size of the 6-digit code space [100000, 999999].
var codeRange = big.NewInt(900000)

/*
GenerateCode produces a cryptographically random 6-digit numeric code.

Description: The code is drawn uniformly from [100000, 999999], so it always
has exactly [CodeLength] digits and never carries a leading zero.

Returns:
  - string: The 6-digit code.
  - error: Entropy source failures.
*/
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", fmt.Errorf("auth_generate_code_failed: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// emailPattern accepts any non-whitespace local part and a dotted domain.
// Intentionally permissive; deliverability is proven by the verification
// email, not by the regex.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail canonicalizes an email address for storage and lookup.
// Lowercasing plus trimming means "TEST@test.com " and "test@test.com"
// resolve to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether email matches the accepted address shape.
// Callers must normalize first.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
