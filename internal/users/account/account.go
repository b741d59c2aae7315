// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

/*
Package account exposes the administrative user directory.

It provides read access to registered accounts (listing and lookup by ID) for
operators holding the SUPERADMIN role.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Security: Every route is gated by the role middleware; the service itself
    performs no authorization.
*/
package account

import (
	"context"

	"github.com/condorlabs/condor/internal/users/auth"
)

// # Repository Contracts

// DirectoryRepository defines the read-only persistence contract for the user directory.
type DirectoryRepository interface {
	/*
		List retrieves a page of user accounts ordered by creation time.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []auth.User: Page of accounts (password hashes never leave storage)
		  - error: Retrieval errors
	*/
	List(context context.Context, limit, offset int) ([]auth.User, error)

	/*
		Count returns the total number of registered accounts.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Account count
		  - error: Retrieval errors
	*/
	Count(context context.Context) (int, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)
}
