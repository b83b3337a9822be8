// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond writes the JSON envelopes every VoxMundi handler returns.
//
// Successful bodies are {data} or {data, meta}; failures are
// {error, code, details}. Import batch results are the one exception and go
// out bare through [JSON].
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/ctxutil"
	"github.com/taibuivan/voxmundi/pkg/pagination"
)

const contentTypeJSON = "application/json; charset=utf-8"

// # Envelopes

// SuccessEnvelope wraps a single resource or an unpaged collection.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps one page of a collection.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the body of every 4xx/5xx response.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// # Writers

// JSON writes payload as-is with the given status.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", contentTypeJSON)
	writer.WriteHeader(statusCode)
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		slog.Default().Warn("response_encode_failed", slog.Int("status", statusCode), slog.Any("error", err))
	}
}

// OK writes 200 {data}.
func OK(writer http.ResponseWriter, data any) {
	Status(writer, http.StatusOK, data)
}

// Created writes 201 {data}.
func Created(writer http.ResponseWriter, data any) {
	Status(writer, http.StatusCreated, data)
}

// Status writes {data} under an explicit status, e.g. 503 from the readiness check.
func Status(writer http.ResponseWriter, statusCode int, data any) {
	JSON(writer, statusCode, SuccessEnvelope{Data: data})
}

// Paginated writes 200 {data, meta}.
func Paginated(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

// NoContent writes 204 with an empty body.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Error maps err onto an [ErrorEnvelope].

Errors that are not an [*apperr.AppError] become 500 INTERNAL_ERROR and their
text never reaches the client. Every 5xx is logged with the request id; a
502 from a metadata provider is logged at warn level because the fault is
upstream.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	context := request.Context()
	logger := ctxutil.GetLogger(context).With(slog.String("request_id", ctxutil.GetRequestID(context)))

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger.ErrorContext(context, "unhandled_error", slog.Any("error", err))
		appError = apperr.Internal(err)
	}

	switch {
	case appError.HTTPStatus == http.StatusBadGateway:
		logger.WarnContext(context, "upstream_failure", slog.String("code", appError.Code), slog.Any("cause", appError.Cause))
	case appError.HTTPStatus >= http.StatusInternalServerError:
		logger.ErrorContext(context, "api_server_error", slog.String("code", appError.Code), slog.Any("cause", appError.Cause))
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
