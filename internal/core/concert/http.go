// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package concert

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/voxmundi/internal/platform/respond"
	"github.com/taibuivan/voxmundi/pkg/query"
)

// Handler exposes concert search.
type Handler struct {
	service *Service
}

// NewHandler constructs a new concert [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves /api/v1/concerts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.search)
	return router
}

/*
GET /api/v1/concerts?composer=A&composer=B

Request:
  - composer: repeated or comma-separated (query)

Response:
  - 200: []Event, earliest first
  - 400: No composer, or more than 20
  - 503: Custom Search is not configured
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	events, err := handler.service.Search(request.Context(), query.Values(request.URL.Query(), "composer"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, events)
}
