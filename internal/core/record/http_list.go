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

// ListRoutes serves /api/v1/lists.
func (handler *Handler) ListRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listLists)
	router.Get("/{id}", handler.getList)

	router.Group(func(owner chi.Router) {
		owner.Use(middleware.RequireAuth)

		owner.Post("/", handler.createList)
		owner.Patch("/{id}", handler.updateList)
		owner.Delete("/{id}", handler.deleteList)

		owner.Post("/{id}/items", handler.addListItem)
		owner.Patch("/{id}/items/{itemID}", handler.moveListItem)
		owner.Delete("/{id}/items/{itemID}", handler.removeListItem)
	})

	return router
}

/*
GET /api/v1/lists

Description: Lists the lists visible to the caller. Same scoping rules as records.

Request:
  - code: string (query, optional)
  - shared: bool (query)
  - page, limit: int

Response:
  - 200: []List with pagination meta
*/
func (handler *Handler) listLists(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	lists, total, err := handler.lists.ListLists(
		request.Context(),
		requestutil.OptionalUserID(request),
		requestutil.Query(request, "code"),
		requestutil.QueryBool(request, "shared"),
		params.Limit, params.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, lists, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getList(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.lists.GetList(request.Context(), requestutil.OptionalUserID(request), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

/*
POST /api/v1/lists

Request:
  - body: ListInput

Response:
  - 201: List
  - 400: Validation failure
*/
func (handler *Handler) createList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ListInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.lists.CreateList(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, list)
}

func (handler *Handler) updateList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ListUpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.lists.UpdateList(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

func (handler *Handler) deleteList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.lists.DeleteList(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/lists/{id}/items

Request:
  - body: ListItemInput

Response:
  - 201: {"position": int}
  - 409: Item already in the list
  - 422: Item type does not fit the list type
*/
func (handler *Handler) addListItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ListItemInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	position, err := handler.lists.AddItem(request.Context(), userID, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]int{"position": position})
}

/*
PATCH /api/v1/lists/{id}/items/{itemID}

Request:
  - body: MoveInput

Response:
  - 200: List with reordered items
*/
func (handler *Handler) moveListItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input MoveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.lists.MoveItem(request.Context(), userID, requestutil.ID(request, "id"), requestutil.ID(request, "itemID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

func (handler *Handler) removeListItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.lists.RemoveItem(request.Context(), userID, requestutil.ID(request, "id"), requestutil.ID(request, "itemID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
