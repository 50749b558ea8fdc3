// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hentai

import "context"

// # Persistence Contract

// Repository defines the storage operations for gallery records.
type Repository interface {
	/*
		Upsert inserts or replaces a gallery and its full tag list atomically.

		Returns:
		  - error: Storage failures wrapped as apperr.Internal
	*/
	Upsert(context context.Context, gallery *Hentai) error

	/*
		FindByID loads a gallery with its tags in upstream order.

		Returns:
		  - error: apperr.NotFound when no gallery has this ID
	*/
	FindByID(context context.Context, id int64) (*Hentai, error)

	/*
		List returns one page of galleries, newest upload first, plus the total count.
	*/
	List(context context.Context, limit, offset int) ([]*Hentai, int, error)
}
