// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condorlabs/condor/internal/platform/middleware"
	requestutil "github.com/condorlabs/condor/internal/platform/request"
	"github.com/condorlabs/condor/internal/platform/respond"
	"github.com/condorlabs/condor/internal/platform/sec"
	"github.com/condorlabs/condor/internal/platform/validate"
	"github.com/condorlabs/condor/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the administrative user directory endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with directory routes.
//
// # Endpoints
//   - GET /     : Lists registered accounts (paginated).
//   - GET /{id} : Retrieves a single account.
//
// Access is restricted to authenticated SUPERADMIN operators.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleSuperAdmin))

	router.Get("/", handler.listUsers)
	router.Get("/{id}", handler.getUser)

	return router
}

/*
ListUsers returns a page of registered accounts.

GET /api/v1/users?page=1&limit=20

Response:
  - 200: []auth.User with pagination metadata
  - 401: Missing or invalid token
  - 403: Caller is not a SUPERADMIN
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, metadata, err := handler.accountService.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, metadata)
}

/*
GetUser returns a single account by its ID.

GET /api/v1/users/{id}

Response:
  - 200: auth.User
  - 400: Malformed ID
  - 404: NotFound
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required("id", id).UUID("id", id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
