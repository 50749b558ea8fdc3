// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comicinfo maps gallery records onto the ComicInfo.xml schema read by
Komga and similar library managers.

Architecture:

  - Mapper: [FromHentai] and [FilterAndCombineTags], pure and safe for concurrent use.
  - Schema: the ordered [Fields] table and [Encode].
  - Service: cached rendering of stored galleries and stateless conversion of uploads.
  - HTTP: the comicinfo.xml download and the conversion endpoint.

Schema reference: https://anansi-project.github.io/docs/comicinfo/documentation
*/
package comicinfo

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/yomira-galleryinfo/internal/core/hentai"
	"github.com/taibuivan/yomira-galleryinfo/pkg/pointer"
	"github.com/taibuivan/yomira-galleryinfo/pkg/slice"
)

// WebURLPrefix is the gallery page prefix written into the Web element.
const WebURLPrefix = "https://nhentai.net/g/"

// # Tag Routing

// Tag types routed into each optional element. Language tags go to Tags
// because LanguageISO holds a single code and galleries often carry several.
var (
	WriterTypes    = []string{"artist"}
	PublisherTypes = []string{"group"}
	GenreTypes     = []string{"category"}
	TagsTypes      = []string{"character", "language", "parody", "tag"}
)

// ErrUploadDateOutOfRange marks an upload date whose components do not fit the schema widths.
var ErrUploadDateOutOfRange = errors.New("comicinfo: upload date out of range")

// # Schema Record

// ComicInfo is one ComicInfo.xml document. Nil optional fields are omitted
// from the encoded document.
type ComicInfo struct {
	// Title is "<id> <pretty title>" so galleries stay searchable by number.
	Title string
	Year  int16
	Month uint8
	Day   uint8

	Writer     *string
	Translator *string
	Publisher  *string
	Genre      *string
	Tags       *string

	Web string
}

// # Mapping

/*
FromHentai derives the ComicInfo document for one gallery.

Description: The upload timestamp is converted to UTC and each component is
rendered as zero-padded decimal text before being parsed into the schema
width. Tag-derived fields go through [FilterAndCombineTags].

Returns:
  - ComicInfo: The mapped document
  - error: wraps [ErrUploadDateOutOfRange] when the year does not fit int16
*/
func FromHentai(gallery *hentai.Hentai) (ComicInfo, error) {
	year, month, day, err := splitDate(gallery.UploadDate)
	if err != nil {
		return ComicInfo{}, fmt.Errorf("gallery %d: %w", gallery.ID, err)
	}

	return ComicInfo{
		Title:      fmt.Sprintf("%d %s", gallery.ID, pointer.Val(gallery.TitlePretty)),
		Year:       year,
		Month:      month,
		Day:        day,
		Writer:     FilterAndCombineTags(gallery.Tags, WriterTypes, false),
		Translator: gallery.Scanlator,
		Publisher:  FilterAndCombineTags(gallery.Tags, PublisherTypes, false),
		Genre:      FilterAndCombineTags(gallery.Tags, GenreTypes, false),
		Tags:       FilterAndCombineTags(gallery.Tags, TagsTypes, true),
		Web:        WebURLPrefix + strconv.FormatInt(gallery.ID, 10) + "/",
	}, nil
}

/*
FilterAndCombineTags keeps the tags whose type is in allowedTypes and joins
their labels into one comma separated value.

Labels are "type: name" when displayType is set and the bare name otherwise.
They are sorted byte-wise ascending and joined with "," without spaces.
An empty result is reported as nil so the element is omitted.
*/
func FilterAndCombineTags(tags []hentai.Tag, allowedTypes []string, displayType bool) *string {
	allowed := slice.Set(allowedTypes)

	kept := slice.Filter(tags, func(tag hentai.Tag) bool {
		_, ok := allowed[tag.Type]
		return ok
	})

	labels := slice.Map(kept, func(tag hentai.Tag) string {
		if displayType {
			return tag.Type + ": " + tag.Name
		}
		return tag.Name
	})
	slices.Sort(labels)

	return pointer.NonEmpty(strings.Join(labels, ","))
}

// splitDate decomposes a timestamp into the schema's Year, Month and Day widths.
func splitDate(uploaded time.Time) (int16, uint8, uint8, error) {
	utc := uploaded.UTC()

	year, err := strconv.ParseInt(fmt.Sprintf("%04d", utc.Year()), 10, 16)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: year %d does not fit int16", ErrUploadDateOutOfRange, utc.Year())
	}

	month, err := strconv.ParseUint(fmt.Sprintf("%02d", int(utc.Month())), 10, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: month %d", ErrUploadDateOutOfRange, int(utc.Month()))
	}

	day, err := strconv.ParseUint(fmt.Sprintf("%02d", utc.Day()), 10, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: day %d", ErrUploadDateOutOfRange, utc.Day())
	}

	return int16(year), uint8(month), uint8(day), nil
}
