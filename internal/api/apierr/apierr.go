// Package apierr maps domain sentinel errors to HTTP responses.
package apierr

import (
	"context"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/pkg/response"
	"go.uber.org/zap"
)

// Respond writes the HTTP error matching err's sentinel and logs it.
func Respond(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, "request failed", zap.Error(err))
	} else {
		ctxzap.Warn(ctx, "request rejected", zap.Error(err))
	}

	response.Error(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrFormNotFound),
		errors.Is(err, entity.ErrPromptNotFound),
		errors.Is(err, entity.ErrResponseNotFound),
		errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrNoOutput):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrFormEmpty):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrFormInactive):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrInvalidSessionState),
		errors.Is(err, entity.ErrSessionCompleted):
		return http.StatusConflict
	case errors.Is(err, entity.ErrValidationUnavailable),
		errors.Is(err, entity.ErrOutputGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
