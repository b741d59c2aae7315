// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condorlabs/condor/internal/platform/apperr"
)

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
//
// Storage-specific errors (like pgx.ErrNoRows or SQLSTATE 23505) are mapped to
// domain-friendly errors to avoid leaking storage implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns is the canonical scan order shared by every lookup.
const userColumns = `
	id, fullname, email, passwordhash, status, role,
	verificationcode, verificationcodeexpires,
	twofactorcode, twofactorcodeexpires,
	createdat, updatedat`

// scanUser hydrates a User from a row following the [userColumns] order.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Status,
		&user.Role,
		&user.VerificationCode,
		&user.VerificationCodeExpires,
		&user.TwoFactorCode,
		&user.TwoFactorCodeExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new pending account into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided. A unique violation on the email column is surfaced as
[ErrDuplicateEmail] so concurrent signups lose the race cleanly.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: ErrDuplicateEmail, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, fullname, email, passwordhash, status, role,
			verificationcode, verificationcodeexpires, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Status,
		user.Role,
		user.VerificationCode,
		user.VerificationCodeExpires,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Performs a lookup on the account table. Callers are expected to
pass an already-normalized (lowercased, trimmed) address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE email = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: Not found or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
Activate transitions an account to ACTIVE and clears its verification challenge.

Description: Single-statement state transition so a crash between the two
updates can never leave a verified account holding a live code.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Database errors
*/
func (repository *PostgresUserRepository) Activate(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET status = $2, verificationcode = NULL, verificationcodeexpires = NULL, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, StatusActive, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_activate_failed: %w", err)
	}
	return nil
}

/*
SetVerificationChallenge replaces the email verification code and expiry.

Parameters:
  - context: context.Context
  - userID: string
  - code: string
  - expiresAt: time.Time

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetVerificationChallenge(context context.Context, userID, code string, expiresAt time.Time) error {
	const query = `
		UPDATE users.account
		SET verificationcode = $2, verificationcodeexpires = $3, updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, code, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_verification_failed: %w", err)
	}
	return nil
}

/*
SetTwoFactorChallenge replaces the SMS second-factor code and expiry.

Parameters:
  - context: context.Context
  - userID: string
  - code: string
  - expiresAt: time.Time

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetTwoFactorChallenge(context context.Context, userID, code string, expiresAt time.Time) error {
	const query = `
		UPDATE users.account
		SET twofactorcode = $2, twofactorcodeexpires = $3, updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, code, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_two_factor_failed: %w", err)
	}
	return nil
}

/*
ClearTwoFactorChallenge nulls the second-factor fields after a successful login.

Description: Makes consumed 2FA codes single-use.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) ClearTwoFactorChallenge(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET twofactorcode = NULL, twofactorcodeexpires = NULL, updatedat = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_clear_two_factor_failed: %w", err)
	}
	return nil
}

/*
Delete permanently removes an account row.

Description: Compensation path for signups whose verification email bounced.
The account never became reachable, so a hard delete is safe.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Side-effect failures
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM users.account WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}
	return nil
}
