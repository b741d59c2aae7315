// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

/*
Package auth implements the account enrollment and sign-in state machine.

It defines the core domain entity (User) and the business rules that drive an
account through its lifecycle: registration with email verification, and a
two-step sign-in that requires an SMS-delivered second factor before a JWT is
issued.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/condorlabs/condor/internal/platform/sec"
)

// # Account Lifecycle

// UserStatus is the enrollment state of an account.
type UserStatus string

const (
	// StatusPending marks an account created via signup whose email
	// ownership has not yet been proven.
	StatusPending UserStatus = "PENDING"

	// StatusActive marks an account whose email has been verified.
	// Only active accounts may sign in.
	StatusActive UserStatus = "ACTIVE"
)

// # Domain Entities

// User represents a registered member of the Condor platform.
//
// The verification and two-factor challenge fields are nullable: they hold a
// value only while the corresponding challenge is outstanding and are cleared
// once consumed.
type User struct {
	ID           string       `json:"id"`
	FullName     string       `json:"full_name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Status       UserStatus   `json:"status"`
	Role         sec.UserRole `json:"role"`

	// Email verification challenge (signup / resend).
	VerificationCode        *string    `json:"-"`
	VerificationCodeExpires *time.Time `json:"-"`

	// SMS second-factor challenge (sign-in).
	TwoFactorCode        *string    `json:"-"`
	TwoFactorCodeExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the account has completed email verification.
func (user *User) IsActive() bool {
	return user.Status == StatusActive
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldCode     = "code"
	FieldToken    = "token"
	FieldUserID   = "user_id"
	FieldMessage  = "message"
)
