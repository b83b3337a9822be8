// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/voxmundi/internal/platform/constants"
	"github.com/taibuivan/voxmundi/internal/platform/middleware"
	requestutil "github.com/taibuivan/voxmundi/internal/platform/request"
	"github.com/taibuivan/voxmundi/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes the import and provider proxy endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new importer [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func importLimit() func(http.Handler) http.Handler {
	return middleware.UserRateLimit(constants.ImportRateLimitRequests, constants.ImportRateLimitWindow)
}

// RegisterFilmRoutes adds the TMDb endpoints to the /films router.
func (handler *Handler) RegisterFilmRoutes(router chi.Router) {
	router.With(middleware.RequireAuth, importLimit()).
		Post("/import", handler.importFilms)
	router.Get("/{external_id}/images", handler.filmImages)
}

// RegisterBookRoutes adds the OpenLibrary endpoints to the /books router.
func (handler *Handler) RegisterBookRoutes(router chi.Router) {
	router.With(middleware.RequireAuth, importLimit()).
		Post("/import", handler.importBooks)
	router.Get("/search", handler.searchBooks)
}

/*
POST /api/v1/films/import

Description: Imports films by TMDb id or by title with an optional "(YYYY)"
suffix. Per-item failures are reported in the results and never fail the
request.

Request:
  - items: []string (1..100)

Response:
  - 200: Batch
  - 400: Validation failure
  - 503: TMDb is not configured
*/
func (handler *Handler) importFilms(writer http.ResponseWriter, request *http.Request) {
	var input ImportInput
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	batch, err := handler.service.ImportFilms(request.Context(), input.Items)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, batch)
}

/*
POST /api/v1/books/import

Request:
  - items: []string (OpenLibrary work ids or titles)

Response:
  - 200: Batch
*/
func (handler *Handler) importBooks(writer http.ResponseWriter, request *http.Request) {
	var input ImportInput
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	batch, err := handler.service.ImportBooks(request.Context(), input.Items)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, batch)
}

// GET /api/v1/films/{external_id}/images
func (handler *Handler) filmImages(writer http.ResponseWriter, request *http.Request) {
	images, err := handler.service.FilmImages(request.Context(), requestutil.Param(request, "external_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, images)
}

// GET /api/v1/books/search?title=
func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	works, err := handler.service.SearchBooks(request.Context(), requestutil.Query(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, works)
}
