package handler

import (
	"net/http"
	"strconv"

	"github.com/piensaperu/api/internal/model"
)

// PoliticalPartyHandler handles political party endpoints
type PoliticalPartyHandler struct {
	partyService EntityService[model.PoliticalParty]
}

// NewPoliticalPartyHandler creates a new political party handler
func NewPoliticalPartyHandler(partyService EntityService[model.PoliticalParty]) *PoliticalPartyHandler {
	return &PoliticalPartyHandler{
		partyService: partyService,
	}
}

func partyLink(p *model.PoliticalParty) string {
	return "/v1/political-parties/" + strconv.FormatInt(p.ID, 10)
}

// List handles GET /v1/political-parties
func (h *PoliticalPartyHandler) List(w http.ResponseWriter, r *http.Request) {
	parties, err := h.partyService.List(r.Context())
	if err != nil {
		WriteError(w, listFailed(err, "political parties"))
		return
	}

	WriteCollection(w, http.StatusOK, parties, nil, map[string]string{
		"self": "/v1/political-parties",
	})
}

// Get handles GET /v1/political-parties/{id}
func (h *PoliticalPartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	writeResponse(w, http.StatusOK, h.partyService.GetByID(r.Context(), id), partyLink)
}

// Create handles POST /v1/political-parties
func (h *PoliticalPartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SavePoliticalPartyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	writeResponse(w, http.StatusCreated, h.partyService.Save(r.Context(), req.ToPoliticalParty()), partyLink)
}

// Update handles PUT /v1/political-parties/{id}
func (h *PoliticalPartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	var req model.SavePoliticalPartyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	writeResponse(w, http.StatusOK, h.partyService.Update(r.Context(), id, req.ToPoliticalParty()), partyLink)
}

// Delete handles DELETE /v1/political-parties/{id}
func (h *PoliticalPartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "id")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	writeResponse(w, http.StatusOK, h.partyService.Delete(r.Context(), id), partyLink)
}
