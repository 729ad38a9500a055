package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/usecase"
)

const apiVersion = "2.0"

type responseEnvelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       any            `json:"data,omitempty"`
	Error      *responseError `json:"error,omitempty"`
}

type responseError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status,omitempty"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrUnresolvedTeam):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "unresolvedTeam", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrInsufficientData):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "insufficientData", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrQuotaExceeded):
		return mappedError{HTTPStatus: http.StatusPaymentRequired, Reason: "quotaExceeded", Status: "RESOURCE_EXHAUSTED"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrRateLimited):
		return mappedError{HTTPStatus: http.StatusTooManyRequests, Reason: "rateLimited", Status: "RESOURCE_EXHAUSTED"}
	case errors.Is(err, usecase.ErrConfiguration):
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "modelConfiguration", Status: "INTERNAL"}
	case errors.Is(err, usecase.ErrUpstreamFetch):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "upstreamFetch", Status: "UNAVAILABLE"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internal", Status: "INTERNAL"}
	}
}

func writeJSON(ctx context.Context, logger *logging.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(responseEnvelope{APIVersion: apiVersion, Data: data}); err != nil {
		logger.ErrorContext(ctx, "encode response failed", "error", err)
	}
}

func writeError(ctx context.Context, logger *logging.Logger, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", "error", err)
	} else {
		logger.WarnContext(ctx, "request rejected", "reason", mapped.Reason, "error", err)
	}

	envelope := responseEnvelope{
		APIVersion: apiVersion,
		Error: &responseError{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors:  []errorItem{{Reason: mapped.Reason, Message: err.Error()}},
		},
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(mapped.HTTPStatus)
	if encodeErr := sonic.ConfigDefault.NewEncoder(w).Encode(envelope); encodeErr != nil {
		logger.ErrorContext(ctx, "encode error response failed", "error", encodeErr)
	}
}

func writeInternalError(ctx context.Context, logger *logging.Logger, w http.ResponseWriter, err error) {
	logger.ErrorContext(ctx, "internal error", "error", err)
	envelope := responseEnvelope{
		APIVersion: apiVersion,
		Error: &responseError{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
			Status:  "INTERNAL",
		},
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(envelope)
}
