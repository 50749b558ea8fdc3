// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hentai

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/metrics"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/validate"
	"github.com/taibuivan/yomira-galleryinfo/pkg/pagination"
)

// ImportHook runs after a gallery has been stored.
type ImportHook func(context context.Context, gallery *Hentai)

// # Service Implementation

// Service coordinates gallery lookup and import.
type Service struct {
	repository Repository
	metrics    metrics.Recorder
	logger     *slog.Logger

	mu    sync.RWMutex
	hooks []ImportHook
}

// NewService constructs a new gallery [Service].
func NewService(repository Repository, recorder metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		metrics:    recorder,
		logger:     logger,
	}
}

// OnImported registers a hook fired after every successful import.
func (service *Service) OnImported(hook ImportHook) {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.hooks = append(service.hooks, hook)
}

// Get returns one gallery by ID.
func (service *Service) Get(context context.Context, id int64) (*Hentai, error) {
	return service.repository.FindByID(context, id)
}

// List returns a page of galleries and the total count.
func (service *Service) List(context context.Context, params pagination.Params) ([]*Hentai, int, error) {
	return service.repository.List(context, params.Limit, params.Offset())
}

/*
Import validates an upstream payload and stores it under pathID.

Description: The payload's own id must equal pathID so a PUT cannot write a
different gallery than the URL names. On success the import counter is bumped
and every registered [ImportHook] runs in registration order.

Returns:
  - *Hentai: The stored record
  - error: VALIDATION_ERROR for a bad payload or ID mismatch, storage errors otherwise
*/
func (service *Service) Import(context context.Context, pathID int64, payload Payload) (*Hentai, error) {
	gallery, err := FromPayload(payload)
	if err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).
		Custom("id", gallery.ID != pathID, "Must match the gallery in the URL").
		Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Upsert(context, gallery); err != nil {
		return nil, err
	}

	service.metrics.RecordGalleryImported()
	ctxutil.LoggerOr(context, service.logger).InfoContext(context, "gallery_imported",
		slog.Int64("gallery_id", gallery.ID),
		slog.Int("tag_count", len(gallery.Tags)),
	)

	service.mu.RLock()
	hooks := append([]ImportHook(nil), service.hooks...)
	service.mu.RUnlock()

	for _, hook := range hooks {
		hook(context, gallery)
	}

	return gallery, nil
}
