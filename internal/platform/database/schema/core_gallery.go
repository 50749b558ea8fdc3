// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreGalleryTable represents the 'core.gallery' table
type CoreGalleryTable struct {
	Table         string
	ID            string
	MediaID       string
	TitleEnglish  string
	TitleJapanese string
	TitlePretty   string
	Scanlator     string
	UploadDate    string
	NumPages      string
	NumFavorites  string
	CreatedAt     string
	UpdatedAt     string
}

// CoreGallery is the schema definition for core.gallery
var CoreGallery = CoreGalleryTable{
	Table:         "core.gallery",
	ID:            "id",
	MediaID:       "mediaid",
	TitleEnglish:  "titleenglish",
	TitleJapanese: "titlejapanese",
	TitlePretty:   "titlepretty",
	Scanlator:     "scanlator",
	UploadDate:    "uploaddate",
	NumPages:      "numpages",
	NumFavorites:  "numfavorites",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns lists the columns read back into a gallery record, in scan order.
func (t CoreGalleryTable) Columns() []string {
	return []string{
		t.ID, t.MediaID, t.TitleEnglish, t.TitleJapanese, t.TitlePretty,
		t.Scanlator, t.UploadDate, t.NumPages, t.NumFavorites,
	}
}
