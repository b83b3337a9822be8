// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/voxmundi/internal/platform/middleware"
	requestutil "github.com/taibuivan/voxmundi/internal/platform/request"
	"github.com/taibuivan/voxmundi/internal/platform/respond"
	"github.com/taibuivan/voxmundi/internal/platform/sec"
	"github.com/taibuivan/voxmundi/pkg/pagination"
)

// Handler exposes the person directory.
type Handler struct {
	service *Service
}

// NewHandler constructs a new person [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves /api/v1/people.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Authenticated
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.create)
		authed.Patch("/{id}", handler.update)
		authed.With(middleware.RequireRole(sec.RoleCurator)).Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/v1/people

Request:
  - q: string (query, optional name fragment)
  - nationality: string (query, optional)
  - page, limit: int

Response:
  - 200: []Person with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		Query:       requestutil.Query(request, "q"),
		Nationality: requestutil.Query(request, "nationality"),
	}

	people, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, people, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	person, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Person
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Person
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
