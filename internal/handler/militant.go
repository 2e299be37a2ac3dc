package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/piensaperu/api/internal/model"
)

// EntityService is the CRUD surface shared by the militant and political
// party services
type EntityService[T any] interface {
	List(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id int64) *model.Response[*T]
	Save(ctx context.Context, entity *T) *model.Response[*T]
	Update(ctx context.Context, id int64, changed *T) *model.Response[*T]
	Delete(ctx context.Context, id int64) *model.Response[*T]
}

// MilitantHandler handles militant endpoints
type MilitantHandler struct {
	militantService EntityService[model.Militant]
}

// NewMilitantHandler creates a new militant handler
func NewMilitantHandler(militantService EntityService[model.Militant]) *MilitantHandler {
	return &MilitantHandler{
		militantService: militantService,
	}
}

func militantLink(m *model.Militant) string {
	return "/v1/militants/" + strconv.FormatInt(m.ID, 10)
}

// List handles GET /v1/militants
func (h *MilitantHandler) List(w http.ResponseWriter, r *http.Request) {
	militants, err := h.militantService.List(r.Context())
	if err != nil {
		WriteError(w, listFailed(err, "militants"))
		return
	}

	WriteCollection(w, http.StatusOK, militants, nil, map[string]string{
		"self": "/v1/militants",
	})
}

// Get handles GET /v1/militants/{id}
func (h *MilitantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	writeResponse(w, http.StatusOK, h.militantService.GetByID(r.Context(), id), militantLink)
}

// Create handles POST /v1/militants
func (h *MilitantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SaveMilitantRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	writeResponse(w, http.StatusCreated, h.militantService.Save(r.Context(), req.ToMilitant()), militantLink)
}

// Update handles PUT /v1/militants/{id}
func (h *MilitantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	var req model.SaveMilitantRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	writeResponse(w, http.StatusOK, h.militantService.Update(r.Context(), id, req.ToMilitant()), militantLink)
}

// Delete handles DELETE /v1/militants/{id}
func (h *MilitantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	writeResponse(w, http.StatusOK, h.militantService.Delete(r.Context(), id), militantLink)
}
