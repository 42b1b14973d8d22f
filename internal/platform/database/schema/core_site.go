package schema

// CoreSiteTable represents the 'core.site' table
type CoreSiteTable struct {
	Table     string
	ID        string
	Title     string
	Subtitle  string
	URL       string
	Image     string
	Category  string
	Tags      string
	IsActive  string
	SortOrder string
	CreatedAt string
	UpdatedAt string
}

// CoreSite is the schema definition for core.site
var CoreSite = CoreSiteTable{
	Table:     "core.site",
	ID:        "id",
	Title:     "title",
	Subtitle:  "subtitle",
	URL:       "url",
	Image:     "image",
	Category:  "category",
	Tags:      "tags",
	IsActive:  "isactive",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns lists the columns read into a site, in scan order.
func (t CoreSiteTable) Columns() []string {
	return []string{t.ID, t.Title, t.Subtitle, t.URL, t.Image, t.Category, t.Tags, t.IsActive, t.SortOrder, t.CreatedAt}
}
