// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condorlabs/condor/internal/platform/apperr"
	"github.com/condorlabs/condor/internal/platform/database/schema"
	"github.com/condorlabs/condor/internal/users/auth"
)

// # Directory Repository

// PostgresDirectoryRepository implements [DirectoryRepository] using pgx.
//
// The password hash column is intentionally never selected here: directory
// reads have no business touching credentials.
type PostgresDirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new PostgreSQL implementation of DirectoryRepository.
func NewDirectoryRepository(pool *pgxpool.Pool) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{pool: pool}
}

/*
List retrieves a page of accounts ordered by creation time (newest first).

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []auth.User: Page of accounts
  - error: Query or scan failures
*/
func (repository *PostgresDirectoryRepository) List(context context.Context, limit, offset int) ([]auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		schema.UserAccount.ID, schema.UserAccount.FullName, schema.UserAccount.Email,
		schema.UserAccount.Status, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table, schema.UserAccount.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_directory_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := []auth.User{}
	for rows.Next() {
		var user auth.User
		err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.Status,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_directory_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_directory_repo_rows_failed: %w", err)
	}

	return users, nil
}

/*
Count returns the total number of registered accounts.

Parameters:
  - context: context.Context

Returns:
  - int: Account count
  - error: Query failures
*/
func (repository *PostgresDirectoryRepository) Count(context context.Context) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.UserAccount.Table)

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_directory_repo_count_failed: %w", err)
	}

	return total, nil
}

/*
FindByID retrieves a single account by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresDirectoryRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.FullName, schema.UserAccount.Email,
		schema.UserAccount.Status, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Status,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_directory_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}
