// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/voxmundi/internal/platform/middleware"
	requestutil "github.com/taibuivan/voxmundi/internal/platform/request"
	"github.com/taibuivan/voxmundi/internal/platform/respond"
	"github.com/taibuivan/voxmundi/pkg/pagination"
)

// # Handler Implementation

// Handler exposes personal records and lists.
type Handler struct {
	records *Service
	lists   *ListService
}

// NewHandler constructs a new record [Handler].
func NewHandler(records *Service, lists *ListService) *Handler {
	return &Handler{records: records, lists: lists}
}

// RecordRoutes serves /api/v1/items.
func (handler *Handler) RecordRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listRecords)
	router.Get("/{id}", handler.getRecord)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Post("/", handler.createRecord)
		owner.Patch("/{id}", handler.updateRecord)
		owner.Delete("/{id}", handler.deleteRecord)
	})

	return router
}

// FilmImageRoutes serves /api/v1/user-films.
func (handler *Handler) FilmImageRoutes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireAuth).Patch("/{id}/update-image", handler.updateFilmImage)
	return router
}

/*
GET /api/v1/items

Description: Lists the records visible to the caller.

Request:
  - code: string (query, optional culture code)
  - shared: bool (query, browse other users' public records)
  - q: string (query, title or notes fragment)
  - kind: string (query, optional)
  - page, limit: int

Response:
  - 200: []Record with pagination meta
*/
func (handler *Handler) listRecords(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	scope := Scope{
		Code:   requestutil.Query(request, "code"),
		Shared: requestutil.QueryBool(request, "shared"),
		Query:  requestutil.Query(request, "q"),
		Kind:   Kind(requestutil.Query(request, "kind")),
	}

	records, total, err := handler.records.List(request.Context(), requestutil.OptionalUserID(request), scope, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, records, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/items/{id}

Response:
  - 200: Record
  - 404: Missing or private to another user
*/
func (handler *Handler) getRecord(writer http.ResponseWriter, request *http.Request) {
	record, err := handler.records.Get(request.Context(), requestutil.OptionalUserID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

/*
POST /api/v1/items

Request:
  - body: Input

Response:
  - 201: Record
  - 400: Validation failure, including cultures not owned by the caller
*/
func (handler *Handler) createRecord(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.records.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, record)
}

/*
PATCH /api/v1/items/{id}

Request:
  - body: UpdateInput (absent fields are kept)

Response:
  - 200: Record
  - 403: Not the owner
  - 404: Unknown record
*/
func (handler *Handler) updateRecord(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.records.Update(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) deleteRecord(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.records.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PATCH /api/v1/user-films/{id}/update-image

Description: Sets the poster and background of a film record from TMDb
path fragments.

Request:
  - body: ImageInput

Response:
  - 200: Record
  - 422: Not a film record
*/
func (handler *Handler) updateFilmImage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ImageInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.records.UpdateFilmImage(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}
