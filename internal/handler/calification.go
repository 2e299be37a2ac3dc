package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/piensaperu/api/internal/model"
)

// CalificationService is the calification surface the handler needs
type CalificationService interface {
	List(ctx context.Context) ([]*model.Calification, error)
	ListByUserID(ctx context.Context, userID int64) ([]*model.Calification, error)
	GetByID(ctx context.Context, id int64) *model.CalificationResponse
	Save(ctx context.Context, userID int64, c *model.Calification) *model.CalificationResponse
	Update(ctx context.Context, id int64, changed *model.Calification) *model.CalificationResponse
	Delete(ctx context.Context, id int64) *model.CalificationResponse
}

// CalificationHandler handles calification endpoints
type CalificationHandler struct {
	calificationService CalificationService
}

// NewCalificationHandler creates a new calification handler
func NewCalificationHandler(calificationService CalificationService) *CalificationHandler {
	return &CalificationHandler{
		calificationService: calificationService,
	}
}

func calificationLink(c *model.Calification) string {
	return "/v1/califications/" + strconv.FormatInt(c.ID, 10)
}

// List handles GET /v1/califications
func (h *CalificationHandler) List(w http.ResponseWriter, r *http.Request) {
	califications, err := h.calificationService.List(r.Context())
	if err != nil {
		WriteError(w, listFailed(err, "califications"))
		return
	}

	WriteCollection(w, http.StatusOK, califications, nil, map[string]string{
		"self": "/v1/califications",
	})
}

// ListByUser handles GET /v1/users/{userId}/califications
func (h *CalificationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, pd := pathID(r, "userId")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	califications, err := h.calificationService.ListByUserID(r.Context(), userID)
	if err != nil {
		WriteError(w, listFailed(err, "califications"))
		return
	}

	WriteCollection(w, http.StatusOK, califications, nil, map[string]string{
		"self": "/v1/users/" + strconv.FormatInt(userID, 10) + "/califications",
	})
}

// Get handles GET /v1/califications/{id}
func (h *CalificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	writeResponse(w, http.StatusOK, h.calificationService.GetByID(r.Context(), id), calificationLink)
}

// Create handles POST /v1/users/{userId}/califications.
// The path owner wins over any user_id in the body.
func (h *CalificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, pd := pathID(r, "userId")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	var req model.SaveCalificationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	writeResponse(w, http.StatusCreated, h.calificationService.Save(r.Context(), userID, req.ToCalification()), calificationLink)
}

// Update handles PUT /v1/califications/{id}
func (h *CalificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	var req model.SaveCalificationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	writeResponse(w, http.StatusOK, h.calificationService.Update(r.Context(), id, req.ToCalification()), calificationLink)
}

// Delete handles DELETE /v1/califications/{id}
func (h *CalificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	writeResponse(w, http.StatusOK, h.calificationService.Delete(r.Context(), id), calificationLink)
}
