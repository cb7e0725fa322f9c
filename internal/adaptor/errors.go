package adaptor

import (
	"errors"
	"net/http"

	"cineacme/internal/dto/request"
	"cineacme/internal/dto/response"
	"cineacme/internal/usecase"
	"cineacme/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase errors onto HTTP responses. Anything
// untyped is a 500 and its detail stays in the log.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validationErr *usecase.ValidationError
		notFoundErr   *usecase.NotFoundError
		conflictErr   *usecase.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Strings("errors", validationErr.Messages),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Messages)

	case errors.As(err, &notFoundErr):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, notFoundErr.Error())

	case errors.As(err, &conflictErr):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		var existing any
		if conflictErr.Existing != nil {
			existing = response.ScreeningToResponse(conflictErr.Existing)
		}
		utils.ResponseConflict(w, conflictErr.Message, existing)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid email or password")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// paginationFromQuery reads page and per_page, clamped to sane bounds.
func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	page, perPage := utils.NormalizePage(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage),
	)
	return &request.PaginatedRequest{Page: page, PerPage: perPage}
}

func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}
