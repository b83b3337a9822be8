// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package culture

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/voxmundi/internal/platform/middleware"
	requestutil "github.com/taibuivan/voxmundi/internal/platform/request"
	"github.com/taibuivan/voxmundi/internal/platform/respond"
)

// # Handler Implementation

// Handler exposes culture, category and period endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new culture [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CultureRoutes serves /api/v1/cultures.
func (handler *Handler) CultureRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCultures)
	router.Get("/{id}", handler.getCulture)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Post("/", handler.createCulture)
		owner.Patch("/{id}", handler.updateCulture)
		owner.Delete("/{id}", handler.deleteCulture)
	})

	return router
}

// CategoryRoutes serves /api/v1/categories.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.With(middleware.RequireAuth).Post("/", handler.createCategory)

	return router
}

// PeriodRoutes serves /api/v1/periods.
func (handler *Handler) PeriodRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPeriods)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Post("/", handler.createPeriod)
		owner.Patch("/{id}", handler.updatePeriod)
		owner.Delete("/{id}", handler.deletePeriod)
	})

	return router
}

// # Cultures

/*
GET /api/v1/cultures

Description: Lists the caller's cultures, optionally narrowed to one code.

Request:
  - code: string (query, optional)

Response:
  - 200: []Culture
*/
func (handler *Handler) listCultures(writer http.ResponseWriter, request *http.Request) {
	cultures, err := handler.service.ListCultures(request.Context(), requestutil.OptionalUserID(request), requestutil.Query(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cultures)
}

/*
GET /api/v1/cultures/{id}

Description: Returns one culture owned by the caller or marked public.

Response:
  - 200: Culture
  - 404: Missing or private to another user
*/
func (handler *Handler) getCulture(writer http.ResponseWriter, request *http.Request) {
	culture, err := handler.service.GetCulture(request.Context(), requestutil.OptionalUserID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, culture)
}

/*
POST /api/v1/cultures

Description: Creates a culture and its default categories.

Request:
  - body: CreateInput

Response:
  - 201: Culture
  - 400: Validation failure
  - 409: Duplicate code
*/
func (handler *Handler) createCulture(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	culture, err := handler.service.CreateCulture(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, culture)
}

/*
PATCH /api/v1/cultures/{id}

Description: Partially updates an owned culture. Code and shared group key are fixed.

Response:
  - 200: Culture
  - 403: Not the owner
*/
func (handler *Handler) updateCulture(writer http.ResponseWriter, request *http.Request) {
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

	culture, err := handler.service.UpdateCulture(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, culture)
}

/*
DELETE /api/v1/cultures/{id}

Response:
  - 204: Deleted
  - 403: Not the owner
*/
func (handler *Handler) deleteCulture(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCulture(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Categories

/*
GET /api/v1/categories

Request:
  - code: string (query, optional)
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context(), requestutil.OptionalUserID(request), requestutil.Query(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

/*
POST /api/v1/categories

Response:
  - 201: Category
  - 403: Culture not owned
  - 409: Key already used in the culture
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

// # Periods

/*
GET /api/v1/periods

Request:
  - code: string (query, optional)
  - key: string (query, optional category key)
*/
func (handler *Handler) listPeriods(writer http.ResponseWriter, request *http.Request) {
	periods, err := handler.service.ListPeriods(
		request.Context(),
		requestutil.OptionalUserID(request),
		requestutil.Query(request, "code"),
		requestutil.Query(request, "key"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, periods)
}

/*
POST /api/v1/periods

Response:
  - 201: Period
  - 400: start_year after end_year
*/
func (handler *Handler) createPeriod(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PeriodInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	period, err := handler.service.CreatePeriod(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, period)
}

// PATCH /api/v1/periods/{id}
func (handler *Handler) updatePeriod(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PeriodInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	period, err := handler.service.UpdatePeriod(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, period)
}

// DELETE /api/v1/periods/{id}
func (handler *Handler) deletePeriod(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePeriod(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
