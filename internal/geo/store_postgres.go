// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condorlabs/condor/internal/platform/apperr"
	"github.com/condorlabs/condor/internal/platform/database/schema"
)

// # Catalog Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the catalog Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindDepartmentByDaneCode retrieves a department by its unique DANE code.

Parameters:
  - context: context.Context
  - daneCode: string

Returns:
  - *Department: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindDepartmentByDaneCode(context context.Context, daneCode string) (*Department, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.GeoDepartment.ID, schema.GeoDepartment.Region, schema.GeoDepartment.DaneCode,
		schema.GeoDepartment.Name, schema.GeoDepartment.Slug, schema.GeoDepartment.CreatedAt,
		schema.GeoDepartment.Table, schema.GeoDepartment.DaneCode,
	)

	department := &Department{}
	err := repository.pool.QueryRow(context, query, daneCode).Scan(
		&department.ID,
		&department.Region,
		&department.DaneCode,
		&department.Name,
		&department.Slug,
		&department.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Department")
		}
		return nil, fmt.Errorf("postgres_geo_repo_find_department_failed: %w", err)
	}

	return department, nil
}

/*
CreateDepartment persists a new department row.

Parameters:
  - context: context.Context
  - department: *Department

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) CreateDepartment(context context.Context, department *Department) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.GeoDepartment.Table,
		schema.GeoDepartment.ID, schema.GeoDepartment.Region, schema.GeoDepartment.DaneCode,
		schema.GeoDepartment.Name, schema.GeoDepartment.Slug, schema.GeoDepartment.CreatedAt,
	)

	if department.CreatedAt.IsZero() {
		department.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		department.ID,
		department.Region,
		department.DaneCode,
		department.Name,
		department.Slug,
		department.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_geo_repo_create_department_failed: %w", err)
	}

	return nil
}

/*
FindMunicipalityByDaneCode retrieves a municipality by its unique DANE code.

Parameters:
  - context: context.Context
  - daneCode: string

Returns:
  - *Municipality: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindMunicipalityByDaneCode(context context.Context, daneCode string) (*Municipality, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.GeoMunicipality.ID, schema.GeoMunicipality.DaneCode, schema.GeoMunicipality.Name,
		schema.GeoMunicipality.Slug, schema.GeoMunicipality.DepartmentID, schema.GeoMunicipality.CreatedAt,
		schema.GeoMunicipality.Table, schema.GeoMunicipality.DaneCode,
	)

	municipality := &Municipality{}
	err := repository.pool.QueryRow(context, query, daneCode).Scan(
		&municipality.ID,
		&municipality.DaneCode,
		&municipality.Name,
		&municipality.Slug,
		&municipality.DepartmentID,
		&municipality.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Municipality")
		}
		return nil, fmt.Errorf("postgres_geo_repo_find_municipality_failed: %w", err)
	}

	return municipality, nil
}

/*
CreateMunicipality persists a new municipality row.

Parameters:
  - context: context.Context
  - municipality: *Municipality

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) CreateMunicipality(context context.Context, municipality *Municipality) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.GeoMunicipality.Table,
		schema.GeoMunicipality.ID, schema.GeoMunicipality.DaneCode, schema.GeoMunicipality.Name,
		schema.GeoMunicipality.Slug, schema.GeoMunicipality.DepartmentID, schema.GeoMunicipality.CreatedAt,
	)

	if municipality.CreatedAt.IsZero() {
		municipality.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		municipality.ID,
		municipality.DaneCode,
		municipality.Name,
		municipality.Slug,
		municipality.DepartmentID,
		municipality.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_geo_repo_create_municipality_failed: %w", err)
	}

	return nil
}

/*
ListDepartments returns the full department catalog ordered by name.

Parameters:
  - context: context.Context

Returns:
  - []Department: All departments
  - error: Query or scan failures
*/
func (repository *PostgresRepository) ListDepartments(context context.Context) ([]Department, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC`,
		schema.GeoDepartment.ID, schema.GeoDepartment.Region, schema.GeoDepartment.DaneCode,
		schema.GeoDepartment.Name, schema.GeoDepartment.Slug, schema.GeoDepartment.CreatedAt,
		schema.GeoDepartment.Table, schema.GeoDepartment.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_geo_repo_list_departments_failed: %w", err)
	}
	defer rows.Close()

	departments := []Department{}
	for rows.Next() {
		var department Department
		err := rows.Scan(
			&department.ID,
			&department.Region,
			&department.DaneCode,
			&department.Name,
			&department.Slug,
			&department.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_geo_repo_scan_department_failed: %w", err)
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_geo_repo_departments_rows_failed: %w", err)
	}

	return departments, nil
}

/*
ListMunicipalities returns the municipality catalog joined with departments.

Parameters:
  - context: context.Context

Returns:
  - []MunicipalityListing: All municipalities with their department
  - error: Query or scan failures
*/
func (repository *PostgresRepository) ListMunicipalities(context context.Context) ([]MunicipalityListing, error) {
	query := fmt.Sprintf(`
		SELECT
			m.%s, m.%s, m.%s, m.%s, m.%s, m.%s,
			d.%s, d.%s, d.%s, d.%s, d.%s, d.%s
		FROM %s m
		JOIN %s d ON d.%s = m.%s
		ORDER BY m.%s ASC`,
		schema.GeoMunicipality.ID, schema.GeoMunicipality.DaneCode, schema.GeoMunicipality.Name,
		schema.GeoMunicipality.Slug, schema.GeoMunicipality.DepartmentID, schema.GeoMunicipality.CreatedAt,
		schema.GeoDepartment.ID, schema.GeoDepartment.Region, schema.GeoDepartment.DaneCode,
		schema.GeoDepartment.Name, schema.GeoDepartment.Slug, schema.GeoDepartment.CreatedAt,
		schema.GeoMunicipality.Table, schema.GeoDepartment.Table,
		schema.GeoDepartment.ID, schema.GeoMunicipality.DepartmentID,
		schema.GeoMunicipality.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_geo_repo_list_municipalities_failed: %w", err)
	}
	defer rows.Close()

	listings := []MunicipalityListing{}
	for rows.Next() {
		var listing MunicipalityListing
		err := rows.Scan(
			&listing.ID,
			&listing.DaneCode,
			&listing.Name,
			&listing.Slug,
			&listing.DepartmentID,
			&listing.CreatedAt,
			&listing.Department.ID,
			&listing.Department.Region,
			&listing.Department.DaneCode,
			&listing.Department.Name,
			&listing.Department.Slug,
			&listing.Department.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_geo_repo_scan_municipality_failed: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_geo_repo_municipalities_rows_failed: %w", err)
	}

	return listings, nil
}
