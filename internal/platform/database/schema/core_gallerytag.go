// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreGalleryTagTable represents the 'core.gallerytag' table.
// Rows keep the upstream tag order through Position.
type CoreGalleryTagTable struct {
	Table     string
	GalleryID string
	Position  string
	TagID     string
	Type      string
	Name      string
	URL       string
	Count     string
}

// CoreGalleryTag is the schema definition for core.gallerytag
var CoreGalleryTag = CoreGalleryTagTable{
	Table:     "core.gallerytag",
	GalleryID: "galleryid",
	Position:  "position",
	TagID:     "tagid",
	Type:      "type",
	Name:      "name",
	URL:       "url",
	Count:     "count",
}

// Columns lists the insertable columns, in argument order.
func (t CoreGalleryTagTable) Columns() []string {
	return []string{t.GalleryID, t.Position, t.TagID, t.Type, t.Name, t.URL, t.Count}
}
