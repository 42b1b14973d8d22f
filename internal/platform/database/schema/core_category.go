package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table     string
	ID        string
	Name      string
	Icon      string
	SortOrder string
	CreatedAt string
	UpdatedAt string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreCategoryTable{
	Table:     "core.category",
	ID:        "id",
	Name:      "name",
	Icon:      "icon",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns lists the columns read into a category, in scan order.
func (t CoreCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Icon, t.SortOrder}
}
