// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package auth

import (
	"errors"
	"net/http"

	"github.com/condorlabs/condor/internal/platform/apperr"
)

// # Storage Sentinels

// ErrDuplicateEmail is returned by [UserRepository.Create] when the email
// unique constraint is violated. The service maps it to a client-safe
// conflict; the database is the final arbiter against concurrent signups.
var ErrDuplicateEmail = errors.New("auth: email already registered")

// # Domain Error Taxonomy

// Machine-readable error identifiers emitted by the authentication flows.
// Clients branch on these codes rather than on the human-readable messages.
const (
	CodeMissingFields        = "MISSING_FIELDS"
	CodeMissingEmail         = "MISSING_EMAIL"
	CodeInvalidEmail         = "INVALID_EMAIL"
	CodeWeakPassword         = "WEAK_PASSWORD"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeAlreadyVerified      = "ALREADY_VERIFIED"
	CodeExpired              = "CODE_EXPIRED"
	CodeInvalidCode          = "INVALID_CODE"
	CodeInvalidCodeLength    = "INVALID_CODE_LENGTH"
	CodeInvalidOrExpiredCode = "INVALID_OR_EXPIRED_CODE"
	CodePasswordMismatch     = "PASSWORD_MISMATCH"
	CodeNotificationFailed   = "NOTIFICATION_FAILED"
	CodePersistenceFailure   = "PERSISTENCE_FAILURE"
	CodeLoginFailed          = "LOGIN_FAILED"
)

// errMissingFields signals that one or more required request fields are absent.
func errMissingFields(message string) *apperr.AppError {
	return apperr.New(CodeMissingFields, message, http.StatusBadRequest)
}

// errMissingEmail signals that the email field is absent.
func errMissingEmail() *apperr.AppError {
	return apperr.New(CodeMissingEmail, "Email is required", http.StatusBadRequest)
}

// errInvalidEmail signals that the email does not look like an address.
func errInvalidEmail() *apperr.AppError {
	return apperr.New(CodeInvalidEmail, "Invalid email format", http.StatusBadRequest)
}

// errWeakPassword signals that the password fails the minimum length policy.
func errWeakPassword() *apperr.AppError {
	return apperr.New(CodeWeakPassword, "Password must be at least 6 characters long", http.StatusBadRequest)
}

// errDuplicateEmail signals that the email is already taken.
func errDuplicateEmail() *apperr.AppError {
	return apperr.New(CodeDuplicateEmail, "Email already registered", http.StatusConflict)
}

// errAlreadyVerified signals that the account has already completed verification.
func errAlreadyVerified() *apperr.AppError {
	return apperr.New(CodeAlreadyVerified, "User is already verified", http.StatusConflict)
}

// errCodeExpired signals that the verification challenge has lapsed.
func errCodeExpired() *apperr.AppError {
	return apperr.New(CodeExpired, "Verification code has expired. Please request a new one.", http.StatusBadRequest)
}

// errInvalidCode signals that the submitted verification code does not match.
func errInvalidCode() *apperr.AppError {
	return apperr.New(CodeInvalidCode, "Invalid verification code", http.StatusBadRequest)
}

// errInvalidCodeLength signals a 2FA code of the wrong length.
func errInvalidCodeLength() *apperr.AppError {
	return apperr.New(CodeInvalidCodeLength, "The code must be 6 digits long", http.StatusBadRequest)
}

// errInvalidOrExpiredCode signals a failed second-factor check. The mismatch
// and expiry outcomes are deliberately indistinguishable to the client.
func errInvalidOrExpiredCode() *apperr.AppError {
	return apperr.New(CodeInvalidOrExpiredCode, "Invalid or expired code", http.StatusUnauthorized)
}

// errPasswordMismatch signals a failed credential check at sign-in.
func errPasswordMismatch() *apperr.AppError {
	return apperr.New(CodePasswordMismatch, "Password doesn't match", http.StatusBadRequest)
}

// errNotificationFailed signals that a verification email could not be delivered.
func errNotificationFailed() *apperr.AppError {
	return apperr.New(CodeNotificationFailed, "Failed to send verification email. Please try again later.", http.StatusInternalServerError)
}

// errPersistenceFailure signals a store mutation that could not complete.
// The cause stays server-side; clients only see the generic message.
func errPersistenceFailure(message string, cause error) *apperr.AppError {
	appError := apperr.New(CodePersistenceFailure, message, http.StatusInternalServerError)
	appError.Cause = cause
	return appError
}

// errLoginFailed signals an infrastructure failure while issuing the
// second-factor challenge at sign-in.
func errLoginFailed(cause error) *apperr.AppError {
	appError := apperr.New(CodeLoginFailed, "Login failed", http.StatusInternalServerError)
	appError.Cause = cause
	return appError
}
