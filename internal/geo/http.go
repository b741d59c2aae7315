// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package geo

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condorlabs/condor/internal/platform/apperr"
	"github.com/condorlabs/condor/internal/platform/middleware"
	"github.com/condorlabs/condor/internal/platform/respond"
	"github.com/condorlabs/condor/internal/platform/sec"
)

// maxUploadBytes caps the accepted CSV size. The full DANE reference file is
// well under 1 MiB; 10 MiB leaves generous headroom.
const maxUploadBytes = 10 << 20

// # Definitions & Constructors

// Handler implements the geographic catalog HTTP endpoints.
type Handler struct {
	geoService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{geoService: service}
}

// Routes returns a [chi.Router] configured with catalog routes.
//
// # Endpoints
//   - POST /upload         : Imports a DANE CSV file.
//   - GET  /departments    : Lists the department catalog.
//   - GET  /municipalities : Lists the municipality catalog.
//
// Access is restricted to authenticated SUPERADMIN operators.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleSuperAdmin))

	router.Post("/upload", handler.upload)
	router.Get("/departments", handler.listDepartments)
	router.Get("/municipalities", handler.listMunicipalities)

	return router
}

/*
Upload imports a DANE reference CSV.

POST /api/v1/geo/upload

Description: Accepts a multipart form with a "file" part, streams it through
the importer, and returns the per-row outcome log.

Request:
  - Multipart body: file (CSV)

Response:
  - 200: ImportReport: Row count and logs
  - 400: Missing file part or malformed CSV
  - 403: Caller is not a SUPERADMIN
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxUploadBytes)

	file, _, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("CSV file is required",
			apperr.FieldError{Field: "file", Message: "multipart file part is missing"}))
		return
	}
	defer file.Close()

	report, err := handler.geoService.ImportCSV(request.Context(), file)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("CSV file could not be parsed"))
		return
	}

	respond.OK(writer, report)
}

/*
ListDepartments returns the full department catalog.

GET /api/v1/geo/departments

Response:
  - 200: []Department
*/
func (handler *Handler) listDepartments(writer http.ResponseWriter, request *http.Request) {
	departments, err := handler.geoService.Departments(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, departments)
}

/*
ListMunicipalities returns the municipality catalog with departments embedded.

GET /api/v1/geo/municipalities

Response:
  - 200: []MunicipalityListing
*/
func (handler *Handler) listMunicipalities(writer http.ResponseWriter, request *http.Request) {
	municipalities, err := handler.geoService.Municipalities(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, municipalities)
}
