package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/usecase"
)

type LeadHandler struct {
	Capture *usecase.ReconcileLeadUseCase
	Manage  *usecase.ManageLeadsUseCase
}

func NewLeadHandler(capture *usecase.ReconcileLeadUseCase, manage *usecase.ManageLeadsUseCase) *LeadHandler {
	return &LeadHandler{Capture: capture, Manage: manage}
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id,omitempty"`
}

// CaptureLead handles POST /api/public/leads.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.CaptureLeadInput
	if !decode(w, r, &input) {
		return
	}

	lead, err := h.Capture.Capture(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, CaptureLeadResponse{Success: true, LeadID: lead.ID})
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := usecase.LeadQuery{
		Search: r.URL.Query().Get("search"),
		Status: entity.LeadStatus(r.URL.Query().Get("status")),
	}

	leads, err := h.Manage.List(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list(leads))
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Manage.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if !decode(w, r, &input) {
		return
	}

	lead, err := h.Manage.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if !decode(w, r, &input) {
		return
	}

	lead, err := h.Manage.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Manage.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
