package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/piensaperu/api/internal/database"
	"github.com/piensaperu/api/internal/model"
)

// pathID parses the positive integer path parameter name
func pathID(r *http.Request, name string) (int64, *model.ProblemDetails) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, model.NewBadRequestError(name + " required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewBadRequestError("invalid " + name + ": " + raw)
	}
	return id, nil
}

// writeResponse answers with the resource of a successful envelope or the
// problem its failure maps to
func writeResponse[T any](w http.ResponseWriter, status int, resp *model.Response[T], self func(T) string) {
	if pd := MapResponseError(resp); pd != nil {
		WriteError(w, pd)
		return
	}
	WriteData(w, status, resp.Resource, map[string]string{
		"self": self(resp.Resource),
	})
}

// listFailed maps an error returned by a List operation
func listFailed(err error, what string) *model.ProblemDetails {
	if errors.Is(err, database.ErrConnection) {
		return model.NewServiceUnavailableError("database unavailable")
	}
	return model.NewInternalError("failed to list " + what)
}
