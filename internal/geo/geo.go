// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

/*
Package geo manages Colombian geographic reference data.

It holds the department and municipality catalogs keyed by their official
DANE codes, populated through a CSV bulk import and served as read-mostly
listings.

# Architecture

  - Entities: Department, Municipality (DANE-coded catalogs).
  - Import: Idempotent row-by-row ingestion; existing codes are skipped, and
    every row's outcome is reported back to the operator.
  - Caching: Listings are read-through cached in Redis and invalidated after
    each import.
*/
package geo

import "time"

// # Domain Entities

// Department is a first-level administrative division.
type Department struct {
	ID        string    `json:"id"`
	Region    string    `json:"region"`
	DaneCode  string    `json:"dane_code"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Municipality is a second-level division belonging to a department.
type Municipality struct {
	ID           string    `json:"id"`
	DaneCode     string    `json:"dane_code"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	DepartmentID string    `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// MunicipalityListing is the transport view of a municipality joined with
// its department, matching what listing consumers expect.
type MunicipalityListing struct {
	Municipality
	Department Department `json:"department"`
}

// ImportReport summarizes a CSV import run for the operator.
//
// Logs carries one line per processed row; rows with missing fields or
// row-level errors are reported there without aborting the run.
type ImportReport struct {
	TotalRows int      `json:"total_rows"`
	Logs      []string `json:"logs"`
}
