package handler

import (
	"errors"
	"net/http"

	"github.com/piensaperu/api/internal/database"
	"github.com/piensaperu/api/internal/model"
	"github.com/piensaperu/api/internal/service"
)

// MapResponseError converts a failed service response to a ProblemDetails
// response. The response message becomes the detail so clients see the same
// text the service produced.
func MapResponseError[T any](resp *model.Response[T]) *model.ProblemDetails {
	if resp == nil || resp.Success {
		return nil
	}

	pd := MapServiceError(resp.Err)
	if pd.Status != http.StatusUnprocessableEntity && pd.Status != http.StatusServiceUnavailable {
		pd.Detail = resp.Message
	}
	return pd
}

// MapServiceError converts a service error to a ProblemDetails response.
// Anything not recognised is a bad request, matching how failed envelopes
// have always been answered.
func MapServiceError(err error) *model.ProblemDetails {
	var validationErr *model.ValidationError

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrCalificationNotFound):
		return model.NewNotFoundError("Calification")
	case errors.Is(err, service.ErrMilitantNotFound):
		return model.NewNotFoundError("Militant")
	case errors.Is(err, service.ErrPoliticalPartyNotFound):
		return model.NewNotFoundError("PoliticalParty")
	case errors.Is(err, service.ErrNotFound):
		return model.NewNotFoundError("resource")

	// ===== Validation Errors → 422 =====
	case errors.As(err, &validationErr):
		return model.NewValidationError(validationErr.Fields)
	case errors.Is(err, service.ErrNilEntity):
		return model.NewValidationError([]model.FieldError{{Field: "body", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidUserID):
		return model.NewValidationError([]model.FieldError{{Field: "user_id", Message: err.Error()}})

	// ===== Storage Unavailable → 503 =====
	case errors.Is(err, database.ErrConnection):
		return model.NewServiceUnavailableError("database unavailable")

	// ===== Default → 400 =====
	case err != nil:
		return model.NewBadRequestError(err.Error())
	default:
		return model.NewBadRequestError("request failed")
	}
}
