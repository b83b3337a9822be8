// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/voxmundi/internal/platform/middleware"
	requestutil "github.com/taibuivan/voxmundi/internal/platform/request"
	"github.com/taibuivan/voxmundi/internal/platform/respond"
	"github.com/taibuivan/voxmundi/pkg/pagination"
)

// # Handler Implementation

// Handler exposes the read side of the registry and manual work entry.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ItemRoutes serves /api/v1/universal-items.
func (handler *Handler) ItemRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listItems)
	router.Get("/{id}", handler.getItem)
	return router
}

// WorkRoutes serves /api/v1/works.
func (handler *Handler) WorkRoutes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireAuth).Post("/", handler.createWork)
	return router
}

// RegisterFilmRoutes adds the film listing endpoints to a /films router
// shared with the importer.
func (handler *Handler) RegisterFilmRoutes(router chi.Router) {
	router.Get("/", handler.listFilms)
	router.Get("/{external_id}", handler.getFilm)
}

// RegisterBookRoutes adds the book listing endpoints to a /books router.
func (handler *Handler) RegisterBookRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Get("/{external_id}", handler.getBook)
}

// # Universal Items

/*
GET /api/v1/universal-items

Description: Pages through the registry.

Request:
  - type: book | film | music | artwork | event (query, optional)
  - q: string (query, optional title fragment)
  - page, limit: int

Response:
  - 200: []UniversalItem with pagination meta
*/
func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		Type:  ItemType(requestutil.Query(request, "type")),
		Query: requestutil.Query(request, "q"),
	}

	items, total, err := handler.service.ListItems(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/universal-items/{id}

Response:
  - 200: UniversalItem with its typed record
  - 404: Unknown id
*/
func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.GetItem(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

/*
POST /api/v1/works

Description: Registers a user-entered music piece, artwork or history event.

Response:
  - 201: ItemDetail
  - 400: Validation failure
*/
func (handler *Handler) createWork(writer http.ResponseWriter, request *http.Request) {
	var input WorkInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.CreateWork(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, detail)
}

// # Films and Books

// GET /api/v1/films
func (handler *Handler) listFilms(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	films, total, err := handler.service.ListFilms(request.Context(), requestutil.Query(request, "q"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, films, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/films/{external_id}
func (handler *Handler) getFilm(writer http.ResponseWriter, request *http.Request) {
	film, err := handler.service.GetFilmByTMDbID(request.Context(), requestutil.Param(request, "external_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, film)
}

// GET /api/v1/books
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	books, total, err := handler.service.ListBooks(request.Context(), requestutil.Query(request, "q"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, books, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/books/{external_id}
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBookByOLID(request.Context(), requestutil.Param(request, "external_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}
