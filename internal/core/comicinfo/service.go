// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comicinfo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/yomira-galleryinfo/internal/core/hentai"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/apperr"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/metrics"
)

// GalleryFinder loads stored gallery records.
type GalleryFinder interface {
	Get(context context.Context, id int64) (*hentai.Hentai, error)
}

// # Service Implementation

// Service renders ComicInfo documents for stored galleries and uploaded payloads.
type Service struct {
	galleries GalleryFinder
	cache     Cache
	ttl       time.Duration
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// NewService constructs a new ComicInfo [Service].
func NewService(galleries GalleryFinder, cache Cache, ttl time.Duration, recorder metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		galleries: galleries,
		cache:     cache,
		ttl:       ttl,
		metrics:   recorder,
		logger:    logger,
	}
}

/*
Render returns the encoded ComicInfo.xml of a stored gallery.

Description: The gallery's cache generation is read first, then the cache is
consulted unless refresh is set. On a miss the gallery is loaded, mapped and
encoded, and the document is written back under the generation read at the
start. An import that lands in between advances the generation, so the
write-back cannot shadow the new record. Cache failures are logged and
bypassed.

Parameters:
  - context: context.Context for cancellation and the request logger
  - galleryID: int64
  - refresh: bool (skip the cache read, still write the fresh document)

Returns:
  - []byte: The XML document
  - error: NOT_FOUND for unknown galleries, DATA_INTEGRITY for unmappable dates
*/
func (service *Service) Render(context context.Context, galleryID int64, refresh bool) ([]byte, error) {
	startTime := time.Now()
	defer func() { service.metrics.RecordRenderLatency(time.Since(startTime)) }()

	logger := ctxutil.LoggerOr(context, service.logger)

	// 1. Cache lookup
	generation, err := service.cache.Generation(context, galleryID)
	cacheUsable := err == nil
	if err != nil {
		logger.WarnContext(context, "comicinfo_cache_unavailable",
			slog.Int64("gallery_id", galleryID),
			slog.Any("error", err),
		)
	}

	if cacheUsable && !refresh {
		document, found, err := service.cache.Get(context, galleryID, generation)
		switch {
		case err != nil:
			logger.WarnContext(context, "comicinfo_cache_unavailable",
				slog.Int64("gallery_id", galleryID),
				slog.Any("error", err),
			)
		case found:
			service.metrics.RecordCacheLookup(true)
			service.metrics.RecordRendered(metrics.SourceCache)
			return document, nil
		default:
			service.metrics.RecordCacheLookup(false)
		}
	}

	// 2. Load the source record
	gallery, err := service.galleries.Get(context, galleryID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.metrics.RecordRenderFailure(metrics.ReasonNotFound)
		} else {
			service.metrics.RecordRenderFailure(metrics.ReasonStorage)
		}
		return nil, err
	}

	// 3. Map and encode
	document, err := service.render(context, gallery, metrics.SourceStore)
	if err != nil {
		return nil, err
	}

	// 4. Write back under the generation the record was read for
	if !cacheUsable {
		return document, nil
	}
	if err := service.cache.Set(context, galleryID, generation, document, service.ttl); err != nil {
		logger.WarnContext(context, "comicinfo_cache_write_failed",
			slog.Int64("gallery_id", galleryID),
			slog.Any("error", err),
		)
	}

	return document, nil
}

/*
Convert maps an uploaded upstream payload without touching storage or cache.

Returns:
  - error: VALIDATION_ERROR for a bad payload, DATA_INTEGRITY for unmappable dates
*/
func (service *Service) Convert(context context.Context, payload hentai.Payload) ([]byte, error) {
	gallery, err := hentai.FromPayload(payload)
	if err != nil {
		return nil, err
	}
	return service.render(context, gallery, metrics.SourceUpload)
}

// Invalidate orphans every cached document of a gallery, including ones still being rendered.
func (service *Service) Invalidate(context context.Context, galleryID int64) error {
	if err := service.cache.Invalidate(context, galleryID); err != nil {
		ctxutil.LoggerOr(context, service.logger).WarnContext(context, "comicinfo_cache_invalidate_failed",
			slog.Int64("gallery_id", galleryID),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// OnGalleryImported is a [hentai.ImportHook] that drops the stale document.
func (service *Service) OnGalleryImported(context context.Context, gallery *hentai.Hentai) {
	_ = service.Invalidate(context, gallery.ID)
}

// render maps and encodes one gallery, recording the outcome.
func (service *Service) render(context context.Context, gallery *hentai.Hentai, source string) ([]byte, error) {
	logger := ctxutil.LoggerOr(context, service.logger)

	info, err := FromHentai(gallery)
	if err != nil {
		if errors.Is(err, ErrUploadDateOutOfRange) {
			service.metrics.RecordPreconditionViolation()
			service.metrics.RecordRenderFailure(metrics.ReasonPrecondition)
			logger.ErrorContext(context, "precondition_violation",
				slog.Int64("gallery_id", gallery.ID),
				slog.Time("upload_date", gallery.UploadDate),
				slog.Any("error", err),
			)
			return nil, apperr.Integrity(err)
		}
		return nil, apperr.Internal(err)
	}

	document, err := Encode(info)
	if err != nil {
		service.metrics.RecordRenderFailure(metrics.ReasonEncode)
		return nil, apperr.Internal(err)
	}

	service.metrics.RecordRendered(source)
	logger.DebugContext(context, "comicinfo_rendered",
		slog.Int64("gallery_id", gallery.ID),
		slog.String("source", source),
		slog.Int("bytes", len(document)),
	)

	return document, nil
}
