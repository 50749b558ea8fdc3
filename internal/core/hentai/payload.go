// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hentai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/validate"
	"github.com/taibuivan/yomira-galleryinfo/pkg/pointer"
	"github.com/taibuivan/yomira-galleryinfo/pkg/slice"
)

// # Upstream Payload

// GalleryID accepts the gallery number either as a JSON number or a quoted string.
type GalleryID int64

// UnmarshalJSON implements [json.Unmarshaler].
func (id *GalleryID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	value, err := strconv.ParseInt(string(bytes.Trim(data, `"`)), 10, 64)
	if err != nil {
		return fmt.Errorf("hentai: gallery id %s: %w", data, err)
	}

	*id = GalleryID(value)
	return nil
}

// PayloadTitle is the upstream title triple.
type PayloadTitle struct {
	English  string `json:"english"`
	Japanese string `json:"japanese"`
	Pretty   string `json:"pretty"`
}

// PayloadTag is one entry of the upstream tags array.
type PayloadTag struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// Payload is the upstream gallery JSON document.
type Payload struct {
	ID           GalleryID    `json:"id"`
	MediaID      string       `json:"media_id"`
	Title        PayloadTitle `json:"title"`
	Scanlator    string       `json:"scanlator"`
	UploadDate   int64        `json:"upload_date"`
	Tags         []PayloadTag `json:"tags"`
	NumPages     int          `json:"num_pages"`
	NumFavorites int          `json:"num_favorites"`
}

// # Decoding

/*
DecodeGallery reads one upstream payload from reader and validates it.

Returns:
  - *Hentai: The validated record
  - error: validate.ErrInvalidJSON (wrapped) for malformed JSON, VALIDATION_ERROR for bad fields
*/
func DecodeGallery(reader io.Reader) (*Hentai, error) {
	var payload Payload
	if err := json.NewDecoder(reader).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", validate.ErrInvalidJSON, err)
	}
	return FromPayload(payload)
}

/*
FromPayload validates an upstream payload and converts it into a [Hentai].

Empty title and scanlator strings become absent values. The upload date is
interpreted as unix seconds and normalised to UTC.

Returns:
  - error: VALIDATION_ERROR listing every failing field
*/
func FromPayload(payload Payload) (*Hentai, error) {
	validator := &validate.Validator{}
	validator.
		Positive("id", int64(payload.ID)).
		Positive("upload_date", payload.UploadDate)

	for index, tag := range payload.Tags {
		validator.
			Required(fmt.Sprintf("tags[%d].type", index), tag.Type).
			Required(fmt.Sprintf("tags[%d].name", index), tag.Name)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	tags := slice.Map(payload.Tags, func(tag PayloadTag) Tag {
		return Tag{ID: tag.ID, Type: tag.Type, Name: tag.Name, URL: tag.URL, Count: tag.Count}
	})
	if tags == nil {
		tags = []Tag{}
	}

	return &Hentai{
		ID:            int64(payload.ID),
		MediaID:       payload.MediaID,
		TitleEnglish:  pointer.NonEmpty(payload.Title.English),
		TitleJapanese: pointer.NonEmpty(payload.Title.Japanese),
		TitlePretty:   pointer.NonEmpty(payload.Title.Pretty),
		Scanlator:     pointer.NonEmpty(payload.Scanlator),
		UploadDate:    time.Unix(payload.UploadDate, 0).UTC(),
		NumPages:      payload.NumPages,
		NumFavorites:  payload.NumFavorites,
		Tags:          tags,
	}, nil
}
