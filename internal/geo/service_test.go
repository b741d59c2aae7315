// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package geo

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condorlabs/condor/internal/platform/apperr"
)

// # Test Doubles

// fakeCatalog is an in-memory Repository keyed by DANE code.
type fakeCatalog struct {
	departments    map[string]*Department
	municipalities map[string]*Municipality
	listCalls      int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		departments:    map[string]*Department{},
		municipalities: map[string]*Municipality{},
	}
}

func (catalog *fakeCatalog) FindDepartmentByDaneCode(_ context.Context, daneCode string) (*Department, error) {
	if department, ok := catalog.departments[daneCode]; ok {
		return department, nil
	}
	return nil, apperr.NotFound("Department")
}

func (catalog *fakeCatalog) CreateDepartment(_ context.Context, department *Department) error {
	catalog.departments[department.DaneCode] = department
	return nil
}

func (catalog *fakeCatalog) FindMunicipalityByDaneCode(_ context.Context, daneCode string) (*Municipality, error) {
	if municipality, ok := catalog.municipalities[daneCode]; ok {
		return municipality, nil
	}
	return nil, apperr.NotFound("Municipality")
}

func (catalog *fakeCatalog) CreateMunicipality(_ context.Context, municipality *Municipality) error {
	catalog.municipalities[municipality.DaneCode] = municipality
	return nil
}

func (catalog *fakeCatalog) ListDepartments(_ context.Context) ([]Department, error) {
	catalog.listCalls++
	departments := []Department{}
	for _, department := range catalog.departments {
		departments = append(departments, *department)
	}
	return departments, nil
}

func (catalog *fakeCatalog) ListMunicipalities(_ context.Context) ([]MunicipalityListing, error) {
	catalog.listCalls++
	listings := []MunicipalityListing{}
	for _, municipality := range catalog.municipalities {
		listing := MunicipalityListing{Municipality: *municipality}
		for _, department := range catalog.departments {
			if department.ID == municipality.DepartmentID {
				listing.Department = *department
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// fakeCache is an in-memory ListingCache recording invalidations.
type fakeCache struct {
	departments    []Department
	municipalities []MunicipalityListing
	invalidations  int
}

func (cache *fakeCache) GetDepartments(_ context.Context) ([]Department, error) {
	if cache.departments == nil {
		return nil, apperr.NotFound("Cached listing")
	}
	return cache.departments, nil
}

func (cache *fakeCache) SetDepartments(_ context.Context, departments []Department, _ time.Duration) error {
	cache.departments = departments
	return nil
}

func (cache *fakeCache) GetMunicipalities(_ context.Context) ([]MunicipalityListing, error) {
	if cache.municipalities == nil {
		return nil, apperr.NotFound("Cached listing")
	}
	return cache.municipalities, nil
}

func (cache *fakeCache) SetMunicipalities(_ context.Context, municipalities []MunicipalityListing, _ time.Duration) error {
	cache.municipalities = municipalities
	return nil
}

func (cache *fakeCache) Invalidate(_ context.Context) error {
	cache.departments = nil
	cache.municipalities = nil
	cache.invalidations++
	return nil
}

func newGeoService() (*Service, *fakeCatalog, *fakeCache) {
	catalog := newFakeCatalog()
	cache := &fakeCache{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(catalog, cache, logger), catalog, cache
}

const sampleCSV = "CÓDIGO DANE DEL DEPARTAMENTO,CÓDIGO DANE DEL MUNICIPIO,DEPARTAMENTO,MUNICIPIO,REGION\n" +
	"05,05001,ANTIOQUIA,MEDELLÍN,Región Eje Cafetero - Antioquia\n" +
	"05,05002,ANTIOQUIA,ABEJORRAL,Región Eje Cafetero - Antioquia\n" +
	"08,08001,ATLÁNTICO,BARRANQUILLA,Región Caribe\n"

// # Import

/*
TestImportCSV_CreatesCatalog verifies that unseen DANE codes create rows,
repeated department codes are skipped, and slugs strip accents.
*/
func TestImportCSV_CreatesCatalog(t *testing.T) {
	service, catalog, cache := newGeoService()

	report, err := service.ImportCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRows)

	// Two departments: ANTIOQUIA appears twice but is created once.
	assert.Len(t, catalog.departments, 2)
	assert.Len(t, catalog.municipalities, 3)

	antioquia := catalog.departments["05"]
	require.NotNil(t, antioquia)
	assert.Equal(t, "ANTIOQUIA", antioquia.Name)
	assert.Equal(t, "antioquia", antioquia.Slug)
	assert.Equal(t, "Región Eje Cafetero - Antioquia", antioquia.Region)

	medellin := catalog.municipalities["05001"]
	require.NotNil(t, medellin)
	assert.Equal(t, "MEDELLÍN", medellin.Name)
	assert.Equal(t, "medellin", medellin.Slug)
	assert.Equal(t, antioquia.ID, medellin.DepartmentID)

	// Second ANTIOQUIA row: department skipped, municipality created.
	assert.Contains(t, report.Logs, "Fila 2: Departamento 'ANTIOQUIA' ya existe, se omite su subida.")
	assert.Contains(t, report.Logs, "Fila 2: Municipio 'ABEJORRAL' subido exitosamente.")

	// Listings were invalidated after the run.
	assert.Equal(t, 1, cache.invalidations)
}

/*
TestImportCSV_ByteOrderMark verifies that a UTF-8 BOM in front of the first
header, as Excel exports emit, does not break column matching.
*/
func TestImportCSV_ByteOrderMark(t *testing.T) {
	service, catalog, _ := newGeoService()

	report, err := service.ImportCSV(context.Background(), strings.NewReader("\uFEFF"+sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRows)
	assert.Len(t, catalog.departments, 2)
	assert.Len(t, catalog.municipalities, 3)

	// The BOM-carrying department code column still resolved.
	require.NotNil(t, catalog.departments["05"])
}

/*
TestImportCSV_SkipsIncompleteRows verifies that rows missing any required
column are logged and skipped without aborting the run.
*/
func TestImportCSV_SkipsIncompleteRows(t *testing.T) {
	service, catalog, _ := newGeoService()

	input := "CÓDIGO DANE DEL DEPARTAMENTO,CÓDIGO DANE DEL MUNICIPIO,DEPARTAMENTO,MUNICIPIO,REGION\n" +
		"05,05001,ANTIOQUIA,MEDELLÍN,Región Eje Cafetero - Antioquia\n" +
		"08,,ATLÁNTICO,BARRANQUILLA,Región Caribe\n" +
		",,,,\n"

	report, err := service.ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRows)
	assert.Len(t, catalog.departments, 1)
	assert.Len(t, catalog.municipalities, 1)
	assert.Contains(t, report.Logs, "Fila 2: Datos incompletos. Se omite esta fila.")
	assert.Contains(t, report.Logs, "Fila 3: Datos incompletos. Se omite esta fila.")
}

/*
TestImportCSV_Idempotent verifies that re-importing the same file creates
nothing new and reports every row as already existing.
*/
func TestImportCSV_Idempotent(t *testing.T) {
	service, catalog, _ := newGeoService()
	ctx := context.Background()

	_, err := service.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	report, err := service.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Len(t, catalog.departments, 2)
	assert.Len(t, catalog.municipalities, 3)
	for _, line := range report.Logs {
		assert.Contains(t, line, "ya existe")
	}
}

/*
TestImportCSV_MalformedInput verifies that unparseable CSV aborts the import.
*/
func TestImportCSV_MalformedInput(t *testing.T) {
	service, _, _ := newGeoService()

	_, err := service.ImportCSV(context.Background(), strings.NewReader("a\"broken\nquote,,"))
	assert.Error(t, err)
}

// # Catalog Reads

/*
TestDepartments_ReadThroughCache verifies cache fill on miss and cache hits
afterward.
*/
func TestDepartments_ReadThroughCache(t *testing.T) {
	service, catalog, cache := newGeoService()
	ctx := context.Background()

	_, err := service.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)
	catalog.listCalls = 0

	// 1. Miss: hits the repository and fills the cache.
	departments, err := service.Departments(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 2)
	assert.Equal(t, 1, catalog.listCalls)
	assert.NotNil(t, cache.departments)

	// 2. Hit: served from the cache without touching the repository.
	_, err = service.Departments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.listCalls)
}

/*
TestMunicipalities_IncludeDepartment verifies the joined listing shape.
*/
func TestMunicipalities_IncludeDepartment(t *testing.T) {
	service, _, _ := newGeoService()
	ctx := context.Background()

	_, err := service.ImportCSV(ctx, strings.NewReader(sampleCSV))
	require.NoError(t, err)

	listings, err := service.Municipalities(ctx)
	require.NoError(t, err)
	assert.Len(t, listings, 3)

	for _, listing := range listings {
		assert.NotEmpty(t, listing.DaneCode)
		assert.Equal(t, listing.DepartmentID, listing.Department.ID)
	}
}
