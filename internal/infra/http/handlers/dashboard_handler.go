package handlers

import (
	"net/http"

	"github.com/xavierca1/financekeem/internal/usecase"
)

type DashboardHandler struct {
	Dashboard *usecase.DashboardUseCase
	ClearData *usecase.ClearDataUseCase
}

func NewDashboardHandler(dashboard *usecase.DashboardUseCase, clear *usecase.ClearDataUseCase) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard, ClearData: clear}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, stats)
}

// Clear handles DELETE /api/admin/data.
func (h *DashboardHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.ClearData.Execute(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
