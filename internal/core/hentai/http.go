// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hentai

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-galleryinfo/internal/platform/request"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/respond"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/sec"
	"github.com/taibuivan/yomira-galleryinfo/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for gallery records.
type Handler struct {
	service *Service
}

// NewHandler constructs a new gallery [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the gallery endpoints on an /api/v1 router.
//
// The import endpoint expects [middleware.Authenticate] to run earlier in the chain.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// ## Public Discovery
	router.Get("/galleries", handler.listGalleries)
	router.Get("/galleries/{id}", handler.getGallery)

	// ## Administrative
	router.With(middleware.RequireRole(sec.RoleAdmin)).Put("/galleries/{id}", handler.importGallery)
}

// listGalleries handles GET /galleries.
func (handler *Handler) listGalleries(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	galleries, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, galleries, pagination.NewMeta(params, total))
}

// getGallery handles GET /galleries/{id}.
func (handler *Handler) getGallery(writer http.ResponseWriter, request *http.Request) {
	galleryID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	gallery, err := handler.service.Get(request.Context(), galleryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, gallery)
}

// importGallery handles PUT /galleries/{id} with an upstream payload body.
func (handler *Handler) importGallery(writer http.ResponseWriter, request *http.Request) {
	galleryID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload Payload
	if err := requestutil.DecodeJSON(writer, request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	gallery, err := handler.service.Import(request.Context(), galleryID, payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, gallery)
}
