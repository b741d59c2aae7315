package schema

// GeoMunicipalityTable represents the 'geo.municipality' table
type GeoMunicipalityTable struct {
	Table        string
	ID           string
	DaneCode     string
	Name         string
	Slug         string
	DepartmentID string
	CreatedAt    string
}

// GeoMunicipality is the schema definition for geo.municipality
var GeoMunicipality = GeoMunicipalityTable{
	Table:        "geo.municipality",
	ID:           "id",
	DaneCode:     "danecode",
	Name:         "name",
	Slug:         "slug",
	DepartmentID: "departmentid",
	CreatedAt:    "createdat",
}

// Columns returns all standard column names
func (t GeoMunicipalityTable) Columns() []string {
	return []string{t.ID, t.DaneCode, t.Name, t.Slug, t.DepartmentID, t.CreatedAt}
}
