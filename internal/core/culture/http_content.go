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

// PageContentRoutes serves /api/v1/page-contents.
func (handler *Handler) PageContentRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPageContents)
	router.Get("/{id}", handler.getPageContent)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Post("/", handler.createPageContent)
		owner.Patch("/{id}", handler.updatePageContent)
		owner.Delete("/{id}", handler.deletePageContent)
	})

	return router
}

// MapBorderRoutes serves /api/v1/map-borders.
func (handler *Handler) MapBorderRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMapBorders)
	router.Get("/{id}", handler.getMapBorder)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Post("/", handler.createMapBorder)
		owner.Patch("/{id}", handler.updateMapBorder)
		owner.Delete("/{id}", handler.deleteMapBorder)
	})

	return router
}

// LanguageTableRoutes serves /api/v1/language-tables.
func (handler *Handler) LanguageTableRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listLanguageTables)
	router.Get("/{id}", handler.getLanguageTable)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Post("/", handler.createLanguageTable)
		owner.Patch("/{id}", handler.updateLanguageTable)
		owner.Delete("/{id}", handler.deleteLanguageTable)
	})

	return router
}

// # Page Contents

/*
GET /api/v1/page-contents

Description: Lists the caller's category pages.

Request:
  - code: string (query, optional culture code)
  - key: string (query, optional category key)

Response:
  - 200: []PageContent (empty without a session)
*/
func (handler *Handler) listPageContents(writer http.ResponseWriter, request *http.Request) {
	pages, err := handler.service.ListPageContents(
		request.Context(),
		requestutil.OptionalUserID(request),
		requestutil.Query(request, "code"),
		requestutil.Query(request, "key"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pages)
}

// GET /api/v1/page-contents/{id}
func (handler *Handler) getPageContent(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.GetPageContent(request.Context(), requestutil.OptionalUserID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

/*
POST /api/v1/page-contents

Request:
  - body: PageContentInput

Response:
  - 201: PageContent
  - 400: Category of another culture
  - 403: Culture not owned
  - 409: The category already has a page
*/
func (handler *Handler) createPageContent(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PageContentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.CreatePageContent(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, page)
}

// PATCH /api/v1/page-contents/{id}
func (handler *Handler) updatePageContent(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PageContentUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.UpdatePageContent(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

// DELETE /api/v1/page-contents/{id}
func (handler *Handler) deletePageContent(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePageContent(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Map Borders

/*
GET /api/v1/map-borders

Request:
  - code: string (query, optional culture code)
*/
func (handler *Handler) listMapBorders(writer http.ResponseWriter, request *http.Request) {
	borders, err := handler.service.ListMapBorders(request.Context(), requestutil.OptionalUserID(request), requestutil.Query(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, borders)
}

// GET /api/v1/map-borders/{id}
func (handler *Handler) getMapBorder(writer http.ResponseWriter, request *http.Request) {
	border, err := handler.service.GetMapBorder(request.Context(), requestutil.OptionalUserID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, border)
}

/*
POST /api/v1/map-borders

Request:
  - body: MapBorderInput

Response:
  - 201: MapBorder
  - 400: Period of another culture or borders that are not a JSON document
  - 403: Culture not owned
*/
func (handler *Handler) createMapBorder(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MapBorderInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	border, err := handler.service.CreateMapBorder(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, border)
}

// PATCH /api/v1/map-borders/{id}
func (handler *Handler) updateMapBorder(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MapBorderUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	border, err := handler.service.UpdateMapBorder(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, border)
}

// DELETE /api/v1/map-borders/{id}
func (handler *Handler) deleteMapBorder(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMapBorder(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Language Tables

// GET /api/v1/language-tables?code=
func (handler *Handler) listLanguageTables(writer http.ResponseWriter, request *http.Request) {
	tables, err := handler.service.ListLanguageTables(request.Context(), requestutil.OptionalUserID(request), requestutil.Query(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tables)
}

// GET /api/v1/language-tables/{id}
func (handler *Handler) getLanguageTable(writer http.ResponseWriter, request *http.Request) {
	table, err := handler.service.GetLanguageTable(request.Context(), requestutil.OptionalUserID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, table)
}

/*
POST /api/v1/language-tables

Request:
  - body: LanguageTableInput

Response:
  - 201: LanguageTable
  - 400: Missing title or table_data that is not a JSON object
  - 403: Culture not owned
*/
func (handler *Handler) createLanguageTable(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LanguageTableInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	table, err := handler.service.CreateLanguageTable(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, table)
}

// PATCH /api/v1/language-tables/{id}
func (handler *Handler) updateLanguageTable(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input LanguageTableUpdate
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	table, err := handler.service.UpdateLanguageTable(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, table)
}

// DELETE /api/v1/language-tables/{id}
func (handler *Handler) deleteLanguageTable(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLanguageTable(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
