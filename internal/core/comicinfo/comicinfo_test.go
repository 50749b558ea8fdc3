// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comicinfo_test

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-galleryinfo/internal/core/comicinfo"
	"github.com/taibuivan/yomira-galleryinfo/internal/core/hentai"
	"github.com/taibuivan/yomira-galleryinfo/pkg/pointer"
)

func sampleGallery() *hentai.Hentai {
	return &hentai.Hentai{
		ID:          177013,
		TitlePretty: pointer.To("Sample"),
		UploadDate:  time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC),
		Tags:        []hentai.Tag{},
	}
}

func mixedTags() []hentai.Tag {
	return []hentai.Tag{
		{Type: "tag", Name: "yuri"},
		{Type: "artist", Name: "zeta"},
		{Type: "language", Name: "english"},
		{Type: "group", Name: "circle b"},
		{Type: "category", Name: "doujinshi"},
		{Type: "parody", Name: "original"},
		{Type: "artist", Name: "alpha"},
		{Type: "character", Name: "hero"},
		{Type: "group", Name: "circle a"},
		{Type: "tag", Name: "ahegao"},
		{Type: "language", Name: "translated"},
	}
}

// # Worked Examples

/*
TestFromHentai_MinimalGallery maps a gallery with a title, a date and nothing else.
*/
func TestFromHentai_MinimalGallery(t *testing.T) {
	info, err := comicinfo.FromHentai(sampleGallery())
	require.NoError(t, err)

	assert.Equal(t, comicinfo.ComicInfo{
		Title: "177013 Sample",
		Year:  2023,
		Month: 1,
		Day:   5,
		Web:   "https://nhentai.net/g/177013/",
	}, info)
}

/*
TestFromHentai_TagRouting routes artist and tag types into Writer and Tags.
*/
func TestFromHentai_TagRouting(t *testing.T) {
	gallery := sampleGallery()
	gallery.Tags = []hentai.Tag{
		{Type: "tag", Name: "yuri"},
		{Type: "tag", Name: "ahegao"},
		{Type: "artist", Name: "foo"},
	}

	info, err := comicinfo.FromHentai(gallery)
	require.NoError(t, err)

	require.NotNil(t, info.Writer)
	assert.Equal(t, "foo", *info.Writer)
	require.NotNil(t, info.Tags)
	assert.Equal(t, "tag: ahegao,tag: yuri", *info.Tags)
	assert.Nil(t, info.Publisher)
	assert.Nil(t, info.Genre)
	assert.Nil(t, info.Translator)
}

/*
TestFromHentai_AllFields fills every optional element.
*/
func TestFromHentai_AllFields(t *testing.T) {
	gallery := sampleGallery()
	gallery.Scanlator = pointer.To("Some Scans")
	gallery.Tags = mixedTags()

	info, err := comicinfo.FromHentai(gallery)
	require.NoError(t, err)

	assert.Equal(t, "alpha,zeta", pointer.Val(info.Writer))
	assert.Equal(t, "Some Scans", pointer.Val(info.Translator))
	assert.Equal(t, "circle a,circle b", pointer.Val(info.Publisher))
	assert.Equal(t, "doujinshi", pointer.Val(info.Genre))
	assert.Equal(t,
		"character: hero,language: english,language: translated,parody: original,tag: ahegao,tag: yuri",
		pointer.Val(info.Tags))
}

// # Mapping Laws

/*
TestFromHentai_TitleLaw covers present, absent and empty pretty titles.
*/
func TestFromHentai_TitleLaw(t *testing.T) {
	tests := []struct {
		name   string
		id     int64
		pretty *string
		want   string
	}{
		{"present", 5, pointer.To("Title Here"), "5 Title Here"},
		{"absent", 5, nil, "5 "},
		{"empty", 12, pointer.To(""), "12 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gallery := sampleGallery()
			gallery.ID = tt.id
			gallery.TitlePretty = tt.pretty

			info, err := comicinfo.FromHentai(gallery)
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Title)
		})
	}
}

/*
TestFromHentai_WebLaw writes the ID in plain decimal.
*/
func TestFromHentai_WebLaw(t *testing.T) {
	for _, id := range []int64{1, 7, 177013, 9_999_999_999} {
		gallery := sampleGallery()
		gallery.ID = id

		info, err := comicinfo.FromHentai(gallery)
		require.NoError(t, err)
		assert.Equal(t, comicinfo.WebURLPrefix+strconv.FormatInt(id, 10)+"/", info.Web)
	}
}

/*
TestFromHentai_Idempotent maps the same record twice to equal documents.
*/
func TestFromHentai_Idempotent(t *testing.T) {
	gallery := sampleGallery()
	gallery.Tags = mixedTags()

	first, err := comicinfo.FromHentai(gallery)
	require.NoError(t, err)
	second, err := comicinfo.FromHentai(gallery)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

/*
TestFromHentai_PermutationIndependent shuffles the tag order repeatedly.
*/
func TestFromHentai_PermutationIndependent(t *testing.T) {
	gallery := sampleGallery()
	gallery.Tags = mixedTags()

	want, err := comicinfo.FromHentai(gallery)
	require.NoError(t, err)

	random := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		shuffled := sampleGallery()
		shuffled.Tags = mixedTags()
		random.Shuffle(len(shuffled.Tags), func(i, j int) {
			shuffled.Tags[i], shuffled.Tags[j] = shuffled.Tags[j], shuffled.Tags[i]
		})

		got, err := comicinfo.FromHentai(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

/*
TestFromHentai_UTCNormalisation decomposes the date in UTC, not the input zone.
*/
func TestFromHentai_UTCNormalisation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	gallery := sampleGallery()
	gallery.UploadDate = time.Date(2023, 1, 1, 3, 0, 0, 0, tokyo)

	info, err := comicinfo.FromHentai(gallery)
	require.NoError(t, err)

	assert.Equal(t, int16(2022), info.Year)
	assert.Equal(t, uint8(12), info.Month)
	assert.Equal(t, uint8(31), info.Day)
}

/*
TestFromHentai_YearRange accepts every int16 year and rejects the rest.
*/
func TestFromHentai_YearRange(t *testing.T) {
	tests := []struct {
		year    int
		wantErr bool
	}{
		{1, false},
		{999, false},
		{32767, false},
		{32768, true},
		{40000, true},
	}

	for _, tt := range tests {
		gallery := sampleGallery()
		gallery.UploadDate = time.Date(tt.year, 6, 15, 12, 0, 0, 0, time.UTC)

		info, err := comicinfo.FromHentai(gallery)
		if tt.wantErr {
			assert.True(t, errors.Is(err, comicinfo.ErrUploadDateOutOfRange), "year %d", tt.year)
			continue
		}
		require.NoError(t, err, "year %d", tt.year)
		assert.Equal(t, int16(tt.year), info.Year)
		assert.Equal(t, uint8(6), info.Month)
		assert.Equal(t, uint8(15), info.Day)
	}
}

// # FilterAndCombineTags

/*
TestFilterAndCombineTags_EmptySet returns nil whenever nothing survives the filter.
*/
func TestFilterAndCombineTags_EmptySet(t *testing.T) {
	tags := mixedTags()

	assert.Nil(t, comicinfo.FilterAndCombineTags(nil, []string{"tag"}, true))
	assert.Nil(t, comicinfo.FilterAndCombineTags(tags, nil, false))
	assert.Nil(t, comicinfo.FilterAndCombineTags(tags, []string{"unknown"}, true))
	assert.Nil(t, comicinfo.FilterAndCombineTags(tags, []string{"Artist"}, false))
}

/*
TestFilterAndCombineTags_DisplayType prefixes every label with its type.
*/
func TestFilterAndCombineTags_DisplayType(t *testing.T) {
	tags := []hentai.Tag{{Type: "parody", Name: "b"}, {Type: "character", Name: "a"}}

	plain := comicinfo.FilterAndCombineTags(tags, []string{"parody", "character"}, false)
	labelled := comicinfo.FilterAndCombineTags(tags, []string{"parody", "character"}, true)

	assert.Equal(t, "a,b", pointer.Val(plain))
	assert.Equal(t, "character: a,parody: b", pointer.Val(labelled))
}

/*
TestFilterAndCombineTags_Ordering sorts byte-wise and keeps duplicates.
*/
func TestFilterAndCombineTags_Ordering(t *testing.T) {
	tags := []hentai.Tag{
		{Type: "tag", Name: "beta"},
		{Type: "tag", Name: "Zed"},
		{Type: "tag", Name: "alpha"},
		{Type: "tag", Name: "beta"},
	}

	got := comicinfo.FilterAndCombineTags(tags, []string{"tag"}, false)

	assert.Equal(t, "Zed,alpha,beta,beta", pointer.Val(got))
}
