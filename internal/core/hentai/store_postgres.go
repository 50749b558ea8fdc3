// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hentai

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/database/schema"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/dberr"
)

const resourceGallery = "Gallery"

// PostgresRepository implements [Repository] on core.gallery and core.gallerytag.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Upsert persists a gallery and replaces its tag rows.

Description: Runs inside one transaction. The gallery row is written with
ON CONFLICT DO UPDATE, existing tag rows are cleared, then the new tags are
queued in a single pgx.Batch keyed by their position.

Parameters:
  - context: context.Context for cancellation
  - gallery: *Hentai (validated record)

Returns:
  - error: apperr.Internal on any SQL failure
*/
func (repository *PostgresRepository) Upsert(context context.Context, gallery *Hentai) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceGallery, "begin_upsert_gallery")
	}
	defer transaction.Rollback(context)

	table := schema.CoreGallery
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = NOW()
	`,
		table.Table, strings.Join(table.Columns(), ", "),
		table.ID,
		table.MediaID, table.MediaID,
		table.TitleEnglish, table.TitleEnglish,
		table.TitleJapanese, table.TitleJapanese,
		table.TitlePretty, table.TitlePretty,
		table.Scanlator, table.Scanlator,
		table.UploadDate, table.UploadDate,
		table.NumPages, table.NumPages,
		table.NumFavorites, table.NumFavorites,
		table.UpdatedAt,
	)

	_, err = transaction.Exec(context, query,
		gallery.ID,
		gallery.MediaID,
		gallery.TitleEnglish,
		gallery.TitleJapanese,
		gallery.TitlePretty,
		gallery.Scanlator,
		gallery.UploadDate,
		gallery.NumPages,
		gallery.NumFavorites,
	)
	if err != nil {
		return dberr.Wrap(err, resourceGallery, "upsert_gallery")
	}

	if err := repository.replaceTags(context, transaction, gallery.ID, gallery.Tags); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, resourceGallery, "commit_upsert_gallery")
	}

	return nil
}

/*
replaceTags clears and re-inserts the tag rows of one gallery.

Position preserves the upstream order so reads return tags exactly as imported.
*/
func (repository *PostgresRepository) replaceTags(context context.Context, transaction pgx.Tx, galleryID int64, tags []Tag) error {
	table := schema.CoreGalleryTag

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table.Table, table.GalleryID)
	if _, err := transaction.Exec(context, deleteQuery, galleryID); err != nil {
		return dberr.Wrap(err, resourceGallery, "clear_gallery_tags")
	}

	if len(tags) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		table.Table, strings.Join(table.Columns(), ", "))

	batch := &pgx.Batch{}
	for position, tag := range tags {
		batch.Queue(insertQuery, galleryID, position, tag.ID, tag.Type, tag.Name, tag.URL, tag.Count)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, resourceGallery, "insert_gallery_tags")
	}

	return nil
}

// FindByID loads one gallery and its ordered tags.
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Hentai, error) {
	table := schema.CoreGallery
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.ID)

	gallery, err := scanGallery(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceGallery, "find_gallery")
	}

	tags, err := repository.loadTags(context, []int64{id})
	if err != nil {
		return nil, err
	}
	gallery.Tags = tagsOrEmpty(tags[id])

	return gallery, nil
}

/*
List returns one page of galleries ordered by upload date, newest first.

Description: The total count rides along on every row via a window function.
When the page is past the end a separate COUNT keeps the total accurate.
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Hentai, int, error) {
	table := schema.CoreGallery
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2
	`,
		strings.Join(table.Columns(), ", "), table.Table, table.UploadDate, table.ID)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceGallery, "list_galleries")
	}
	defer rows.Close()

	galleries := make([]*Hentai, 0, limit)
	ids := make([]int64, 0, limit)
	total := 0

	for rows.Next() {
		gallery := &Hentai{}
		if err := rows.Scan(append(galleryTargets(gallery), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, resourceGallery, "scan_gallery")
		}
		gallery.UploadDate = gallery.UploadDate.UTC()
		galleries = append(galleries, gallery)
		ids = append(ids, gallery.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceGallery, "list_galleries")
	}
	rows.Close()

	if len(galleries) == 0 {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", table.Table)
		if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceGallery, "count_galleries")
		}
		return galleries, total, nil
	}

	tags, err := repository.loadTags(context, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, gallery := range galleries {
		gallery.Tags = tagsOrEmpty(tags[gallery.ID])
	}

	return galleries, total, nil
}

// loadTags fetches the tags of several galleries in one round-trip, grouped by gallery.
func (repository *PostgresRepository) loadTags(context context.Context, galleryIDs []int64) (map[int64][]Tag, error) {
	table := schema.CoreGalleryTag
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s
	`,
		table.GalleryID, table.TagID, table.Type, table.Name, table.URL, table.Count,
		table.Table,
		table.GalleryID,
		table.GalleryID, table.Position,
	)

	rows, err := repository.pool.Query(context, query, galleryIDs)
	if err != nil {
		return nil, dberr.Wrap(err, resourceGallery, "load_gallery_tags")
	}
	defer rows.Close()

	result := make(map[int64][]Tag, len(galleryIDs))
	for rows.Next() {
		var galleryID int64
		var tag Tag
		if err := rows.Scan(&galleryID, &tag.ID, &tag.Type, &tag.Name, &tag.URL, &tag.Count); err != nil {
			return nil, dberr.Wrap(err, resourceGallery, "scan_gallery_tag")
		}
		result[galleryID] = append(result[galleryID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceGallery, "load_gallery_tags")
	}

	return result, nil
}

// # Row Mapping

// galleryTargets returns scan destinations matching [schema.CoreGalleryTable.Columns].
func galleryTargets(gallery *Hentai) []any {
	return []any{
		&gallery.ID,
		&gallery.MediaID,
		&gallery.TitleEnglish,
		&gallery.TitleJapanese,
		&gallery.TitlePretty,
		&gallery.Scanlator,
		&gallery.UploadDate,
		&gallery.NumPages,
		&gallery.NumFavorites,
	}
}

func scanGallery(row pgx.Row) (*Hentai, error) {
	gallery := &Hentai{}
	if err := row.Scan(galleryTargets(gallery)...); err != nil {
		return nil, err
	}
	gallery.UploadDate = gallery.UploadDate.UTC()
	return gallery, nil
}

func tagsOrEmpty(tags []Tag) []Tag {
	if tags == nil {
		return []Tag{}
	}
	return tags
}
