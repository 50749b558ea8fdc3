// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package hentai holds the gallery metadata records the ComicInfo exporter reads.

A record arrives as an upstream gallery payload, is validated into a [Hentai],
persisted in PostgreSQL, and served back over the gallery API.

Architecture:

  - Entity: [Hentai] and its ordered [Tag] list.
  - Payload: [Payload], [DecodeGallery] and [FromPayload] for the upstream JSON.
  - Storage: [Repository] with a pgx implementation.
  - Service: import and lookup with post-import hooks.
  - HTTP: list, detail and the admin import endpoint.
*/
package hentai

import "time"

// # Domain Entities

// Tag is one label attached to a gallery.
//
// Type is free-form; the upstream site uses artist, group, category,
// character, language, parody and tag. Duplicates are allowed.
type Tag struct {
	ID    int64  `json:"id,omitempty"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Count int    `json:"count,omitempty"`
}

// Hentai is a gallery metadata record.
type Hentai struct {
	// ID is the upstream gallery number. Always positive once validated.
	ID      int64  `json:"id"`
	MediaID string `json:"media_id,omitempty"`

	// Titles are nil when the upstream field was missing or empty.
	TitleEnglish  *string `json:"title_english,omitempty"`
	TitleJapanese *string `json:"title_japanese,omitempty"`
	TitlePretty   *string `json:"title_pretty,omitempty"`

	Scanlator *string `json:"scanlator,omitempty"`

	// UploadDate is stored in UTC.
	UploadDate time.Time `json:"upload_date"`

	NumPages     int `json:"num_pages"`
	NumFavorites int `json:"num_favorites"`

	// Tags keep upstream order.
	Tags []Tag `json:"tags"`
}
