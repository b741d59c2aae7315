// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given (normalized) email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new pending account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrDuplicateEmail on unique violation, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Activate transitions the account to ACTIVE and clears the verification
		challenge fields in a single statement.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Activate(context context.Context, userID string) error

	/*
		SetVerificationChallenge replaces the account's email verification
		code and its expiry.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetVerificationChallenge(context context.Context, userID, code string, expiresAt time.Time) error

	/*
		SetTwoFactorChallenge replaces the account's SMS second-factor code
		and its expiry.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - code: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetTwoFactorChallenge(context context.Context, userID, code string, expiresAt time.Time) error

	/*
		ClearTwoFactorChallenge nulls the account's second-factor fields so a
		consumed code can never be replayed.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	ClearTwoFactorChallenge(context context.Context, userID string) error

	/*
		Delete permanently removes an account row. Used to compensate a
		signup whose verification email could not be delivered.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}
