package schema

// ContentItemTable represents the 'content.item' table
type ContentItemTable struct {
	Table       string
	ID          string
	Category    string
	Kind        string
	Title       string
	Slug        string
	Text        string
	ImageURL    string
	FileURL     string
	VideoURL    string
	ExternalURL string
	ParentID    string
	Position    string
	CreatedAt   string
	UpdatedAt   string
}

// ContentItem is the schema definition for content.item
var ContentItem = ContentItemTable{
	Table:       "content.item",
	ID:          "id",
	Category:    "category",
	Kind:        "contenttype",
	Title:       "title",
	Slug:        "slug",
	Text:        "text",
	ImageURL:    "imageurl",
	FileURL:     "fileurl",
	VideoURL:    "videourl",
	ExternalURL: "externalurl",
	ParentID:    "parentid",
	Position:    "orderposition",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t ContentItemTable) Columns() []string {
	return []string{
		t.ID, t.Category, t.Kind, t.Title, t.Slug, t.Text,
		t.ImageURL, t.FileURL, t.VideoURL, t.ExternalURL,
		t.ParentID, t.Position, t.CreatedAt, t.UpdatedAt,
	}
}
