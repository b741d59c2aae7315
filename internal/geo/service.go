// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package geo

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/condorlabs/condor/pkg/slug"
	"github.com/condorlabs/condor/pkg/uuid"
)

// # Import Configuration

// CSV column headers as published in the DANE reference file.
const (
	headerDepartmentCode   = "CÓDIGO DANE DEL DEPARTAMENTO"
	headerMunicipalityCode = "CÓDIGO DANE DEL MUNICIPIO"
	headerDepartmentName   = "DEPARTAMENTO"
	headerMunicipalityName = "MUNICIPIO"
	headerRegion           = "REGION"
)

// ListingCacheTTL bounds staleness of cached listings if an invalidation
// after import is lost.
const ListingCacheTTL = 10 * time.Minute

// # Service Layer

// Service orchestrates CSV imports and catalog reads.
type Service struct {
	catalog Repository
	cache   ListingCache
	logger  *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(catalog Repository, cache ListingCache, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

/*
ImportCSV ingests a DANE reference file row by row.

Description: Each row names a department and a municipality. Unseen DANE codes
are created (with a URL slug derived from the accented name); codes already in
the catalog are skipped. Rows with missing fields or row-level errors are
logged into the report and the run continues. Both listing cache entries are
invalidated at the end so readers see the new catalog.

Parameters:
  - context: context.Context
  - reader: io.Reader (raw CSV bytes)

Returns:
  - *ImportReport: Row count and per-row outcome log
  - error: Malformed CSV input that prevents row iteration
*/
func (service *Service) ImportCSV(context context.Context, reader io.Reader) (*ImportReport, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("geo_service_csv_parse_failed: %w", err)
	}

	if len(records) == 0 {
		return &ImportReport{TotalRows: 0, Logs: []string{}}, nil
	}

	columns := headerIndex(records[0])
	rows := records[1:]

	report := &ImportReport{
		TotalRows: len(rows),
		Logs:      []string{},
	}

	for index, row := range rows {
		rowNumber := index + 1

		departmentCode := columns.value(row, headerDepartmentCode)
		municipalityCode := columns.value(row, headerMunicipalityCode)
		departmentName := columns.value(row, headerDepartmentName)
		municipalityName := columns.value(row, headerMunicipalityName)
		region := columns.value(row, headerRegion)

		if departmentCode == "" || municipalityCode == "" || departmentName == "" || municipalityName == "" || region == "" {
			report.Logs = append(report.Logs,
				fmt.Sprintf("Fila %d: Datos incompletos. Se omite esta fila.", rowNumber))
			continue
		}

		department, err := service.importDepartment(context, report, rowNumber, region, departmentCode, departmentName)
		if err != nil {
			continue
		}

		service.importMunicipality(context, report, rowNumber, municipalityCode, municipalityName, department.ID)
	}

	// Catalog changed (or may have): drop the cached listings. A failed
	// invalidation is not fatal; the TTL bounds the staleness window.
	if err := service.cache.Invalidate(context); err != nil {
		service.logger.Warn("geo_listing_cache_invalidate_failed", slog.Any("error", err))
	}

	return report, nil
}

// importDepartment creates the department if its DANE code is unseen, logging
// the outcome. A row-level storage error is logged and reported via err so
// the caller skips the municipality half of the row.
func (service *Service) importDepartment(context context.Context, report *ImportReport, rowNumber int, region, daneCode, name string) (*Department, error) {
	department, err := service.catalog.FindDepartmentByDaneCode(context, daneCode)
	if err == nil {
		report.Logs = append(report.Logs,
			fmt.Sprintf("Fila %d: Departamento '%s' ya existe, se omite su subida.", rowNumber, name))
		return department, nil
	}

	department = &Department{
		ID:       uuid.MustNewV7(),
		Region:   region,
		DaneCode: daneCode,
		Name:     name,
		Slug:     slug.From(name),
	}

	if err := service.catalog.CreateDepartment(context, department); err != nil {
		service.logger.Error("geo_import_department_failed",
			slog.Int("row", rowNumber),
			slog.String("dane_code", daneCode),
			slog.Any("error", err),
		)
		report.Logs = append(report.Logs,
			fmt.Sprintf("Fila %d: Error procesando datos - %s", rowNumber, err))
		return nil, err
	}

	report.Logs = append(report.Logs,
		fmt.Sprintf("Fila %d: Departamento '%s' subido exitosamente.", rowNumber, name))
	return department, nil
}

// importMunicipality mirrors importDepartment for the municipality half of a row.
func (service *Service) importMunicipality(context context.Context, report *ImportReport, rowNumber int, daneCode, name, departmentID string) {
	if _, err := service.catalog.FindMunicipalityByDaneCode(context, daneCode); err == nil {
		report.Logs = append(report.Logs,
			fmt.Sprintf("Fila %d: Municipio '%s' ya existe, se omite su subida.", rowNumber, name))
		return
	}

	municipality := &Municipality{
		ID:           uuid.MustNewV7(),
		DaneCode:     daneCode,
		Name:         name,
		Slug:         slug.From(name),
		DepartmentID: departmentID,
	}

	if err := service.catalog.CreateMunicipality(context, municipality); err != nil {
		service.logger.Error("geo_import_municipality_failed",
			slog.Int("row", rowNumber),
			slog.String("dane_code", daneCode),
			slog.Any("error", err),
		)
		report.Logs = append(report.Logs,
			fmt.Sprintf("Fila %d: Error procesando datos - %s", rowNumber, err))
		return
	}

	report.Logs = append(report.Logs,
		fmt.Sprintf("Fila %d: Municipio '%s' subido exitosamente.", rowNumber, name))
}

// # Catalog Reads

/*
Departments returns the department catalog, read-through cached.

Parameters:
  - context: context.Context

Returns:
  - []Department: Full catalog
  - error: Storage failures
*/
func (service *Service) Departments(context context.Context) ([]Department, error) {
	if departments, err := service.cache.GetDepartments(context); err == nil {
		return departments, nil
	}

	departments, err := service.catalog.ListDepartments(context)
	if err != nil {
		return nil, err
	}

	if err := service.cache.SetDepartments(context, departments, ListingCacheTTL); err != nil {
		service.logger.Warn("geo_department_cache_fill_failed", slog.Any("error", err))
	}

	return departments, nil
}

/*
Municipalities returns the municipality catalog (with departments), read-through cached.

Parameters:
  - context: context.Context

Returns:
  - []MunicipalityListing: Full catalog
  - error: Storage failures
*/
func (service *Service) Municipalities(context context.Context) ([]MunicipalityListing, error) {
	if listings, err := service.cache.GetMunicipalities(context); err == nil {
		return listings, nil
	}

	listings, err := service.catalog.ListMunicipalities(context)
	if err != nil {
		return nil, err
	}

	if err := service.cache.SetMunicipalities(context, listings, ListingCacheTTL); err != nil {
		service.logger.Warn("geo_municipality_cache_fill_failed", slog.Any("error", err))
	}

	return listings, nil
}

// # CSV Helpers

// columnIndex maps a (BOM-stripped, trimmed) header name to its position.
type columnIndex map[string]int

// headerIndex builds the column lookup from the first CSV record.
func headerIndex(header []string) columnIndex {
	columns := columnIndex{}
	for position, name := range header {
		name = strings.TrimPrefix(name, "\uFEFF")
		columns[strings.TrimSpace(name)] = position
	}
	return columns
}

// value returns the trimmed cell under the named column, or "" when the
// column is absent or the row is short.
func (columns columnIndex) value(row []string, name string) string {
	position, ok := columns[name]
	if !ok || position >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[position])
}
