package schema

// GeoDepartmentTable represents the 'geo.department' table
type GeoDepartmentTable struct {
	Table     string
	ID        string
	Region    string
	DaneCode  string
	Name      string
	Slug      string
	CreatedAt string
}

// GeoDepartment is the schema definition for geo.department
var GeoDepartment = GeoDepartmentTable{
	Table:     "geo.department",
	ID:        "id",
	Region:    "region",
	DaneCode:  "danecode",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t GeoDepartmentTable) Columns() []string {
	return []string{t.ID, t.Region, t.DaneCode, t.Name, t.Slug, t.CreatedAt}
}
