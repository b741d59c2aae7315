// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package geo

import (
	"context"
	"time"
)

// # Catalog Data Access

// Repository defines the persistence contract for the geographic catalogs.
type Repository interface {

	/*
		FindDepartmentByDaneCode returns the department with the given DANE code.

		Parameters:
		  - context: context.Context
		  - daneCode: string

		Returns:
		  - *Department: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindDepartmentByDaneCode(context context.Context, daneCode string) (*Department, error)

	/*
		CreateDepartment persists a new department.

		Parameters:
		  - context: context.Context
		  - department: *Department

		Returns:
		  - error: Persistence failures
	*/
	CreateDepartment(context context.Context, department *Department) error

	/*
		FindMunicipalityByDaneCode returns the municipality with the given DANE code.

		Parameters:
		  - context: context.Context
		  - daneCode: string

		Returns:
		  - *Municipality: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindMunicipalityByDaneCode(context context.Context, daneCode string) (*Municipality, error)

	/*
		CreateMunicipality persists a new municipality linked to its department.

		Parameters:
		  - context: context.Context
		  - municipality: *Municipality

		Returns:
		  - error: Persistence failures
	*/
	CreateMunicipality(context context.Context, municipality *Municipality) error

	/*
		ListDepartments returns the full department catalog ordered by name.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Department: All departments
		  - error: Retrieval failures
	*/
	ListDepartments(context context.Context) ([]Department, error)

	/*
		ListMunicipalities returns the full municipality catalog joined with
		departments, ordered by name.

		Parameters:
		  - context: context.Context

		Returns:
		  - []MunicipalityListing: All municipalities with their department
		  - error: Retrieval failures
	*/
	ListMunicipalities(context context.Context) ([]MunicipalityListing, error)
}

// # Listing Cache

// ListingCache defines the read-through cache contract for catalog listings.
// A cache miss is reported as an error; callers fall back to the repository.
type ListingCache interface {

	/*
		GetDepartments returns the cached department listing.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Department: Cached listing
		  - error: apperr.NotFound on miss, or connectivity errors
	*/
	GetDepartments(context context.Context) ([]Department, error)

	/*
		SetDepartments stores the department listing with a TTL.

		Parameters:
		  - context: context.Context
		  - departments: []Department
		  - ttl: time.Duration

		Returns:
		  - error: Connectivity errors
	*/
	SetDepartments(context context.Context, departments []Department, ttl time.Duration) error

	/*
		GetMunicipalities returns the cached municipality listing.

		Parameters:
		  - context: context.Context

		Returns:
		  - []MunicipalityListing: Cached listing
		  - error: apperr.NotFound on miss, or connectivity errors
	*/
	GetMunicipalities(context context.Context) ([]MunicipalityListing, error)

	/*
		SetMunicipalities stores the municipality listing with a TTL.

		Parameters:
		  - context: context.Context
		  - municipalities: []MunicipalityListing
		  - ttl: time.Duration

		Returns:
		  - error: Connectivity errors
	*/
	SetMunicipalities(context context.Context, municipalities []MunicipalityListing, ttl time.Duration) error

	/*
		Invalidate drops both cached listings. Called after a CSV import so
		readers never see a stale catalog.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Connectivity errors
	*/
	Invalidate(context context.Context) error
}
