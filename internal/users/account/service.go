// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/condorlabs/condor/internal/users/auth"
	"github.com/condorlabs/condor/pkg/pagination"
)

// # Service Layer

// Service orchestrates read access to the user directory.
type Service struct {
	directoryRepository DirectoryRepository
	logger              *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(directoryRepo DirectoryRepository, logger *slog.Logger) *Service {
	return &Service{
		directoryRepository: directoryRepo,
		logger:              logger,
	}
}

/*
ListUsers retrieves a page of registered accounts with pagination metadata.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []auth.User: Page of accounts
  - pagination.Meta: Total counts for the response envelope
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params) ([]auth.User, pagination.Meta, error) {
	users, err := service.directoryRepository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_list_failed: %w", err)
	}

	total, err := service.directoryRepository.Count(context)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_count_failed: %w", err)
	}

	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
GetUser retrieves a single account by its ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated account
  - error: Not found or execution failures
*/
func (service *Service) GetUser(context context.Context, userID string) (*auth.User, error) {
	user, err := service.directoryRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
