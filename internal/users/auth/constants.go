// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package auth

import "time"

// # Authentication Constraints

const (
	// VerificationCodeTTL is the duration an email verification code remains
	// valid. Kept at 15 minutes so codes expire before a mailbox-sitting
	// attacker can make use of an intercepted one.
	VerificationCodeTTL = 15 * time.Minute

	// TwoFactorCodeTTL is the duration an SMS second-factor code remains
	// valid. Short-lived (5 minutes) because the user is mid sign-in and
	// holding the phone.
	TwoFactorCodeTTL = 5 * time.Minute

	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 2 * time.Hour

	// CodeLength is the number of digits in verification and 2FA codes.
	CodeLength = 6

	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 6
)
