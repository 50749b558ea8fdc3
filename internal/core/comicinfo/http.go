// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comicinfo

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-galleryinfo/internal/core/hentai"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/apperr"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-galleryinfo/internal/platform/request"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/respond"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/sec"
	"github.com/taibuivan/yomira-galleryinfo/pkg/convert"
)

// # Handler Implementation

// Handler implements the HTTP layer for ComicInfo export.
type Handler struct {
	service *Service
}

// NewHandler constructs a new ComicInfo [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the export endpoints on an /api/v1 router.
//
// Dropping a cached document expects [middleware.Authenticate] earlier in the chain.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/galleries/{id}/comicinfo.xml", handler.downloadComicInfo)
	router.Post("/comicinfo", handler.convertPayload)

	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/galleries/{id}/comicinfo.xml", handler.invalidateComicInfo)
}

// downloadComicInfo handles GET /galleries/{id}/comicinfo.xml[?refresh=true].
func (handler *Handler) downloadComicInfo(writer http.ResponseWriter, request *http.Request) {
	galleryID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	refresh := convert.ToBool(request.URL.Query().Get("refresh"))

	document, err := handler.service.Render(request.Context(), galleryID, refresh)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.XMLAttachment(writer, constants.ComicInfoFileName, document)
}

// convertPayload handles POST /comicinfo with an upstream payload body.
func (handler *Handler) convertPayload(writer http.ResponseWriter, request *http.Request) {
	var payload hentai.Payload
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	document, err := handler.service.Convert(request.Context(), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.XMLAttachment(writer, constants.ComicInfoFileName, document)
}

// invalidateComicInfo handles DELETE /galleries/{id}/comicinfo.xml.
func (handler *Handler) invalidateComicInfo(writer http.ResponseWriter, request *http.Request) {
	galleryID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Invalidate(request.Context(), galleryID); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	respond.NoContent(writer)
}
