// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses ?page=&limit= and describes the resulting page in
// list responses. Pages are 1-indexed.
package pagination

import (
	"net/http"

	"github.com/taibuivan/yomira-galleryinfo/pkg/convert"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type Params struct {
	Page  int
	Limit int
}

// Offset is the SQL OFFSET for the page.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Limit
}

// Meta is the "meta" object of a paginated envelope.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta describes params against total matching rows.
func NewMeta(params Params, total int) Meta {
	meta := Meta{Page: params.Page, Limit: params.Limit, Total: total}
	if params.Limit > 0 {
		meta.TotalPages = (total + params.Limit - 1) / params.Limit
	}
	meta.HasNext = params.Page < meta.TotalPages
	return meta
}

// FromRequest never fails: unparsable or non-positive values fall back to the
// defaults, and limits above [MaxLimit] are capped.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page := convert.ToIntD(query.Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := convert.ToIntD(query.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: min(limit, MaxLimit)}
}
