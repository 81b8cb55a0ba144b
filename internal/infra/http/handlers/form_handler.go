package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/financekeem/internal/usecase"
)

type FormHandler struct {
	Manage *usecase.ManageFormsUseCase
	Submit *usecase.SubmitFormUseCase
}

func NewFormHandler(manage *usecase.ManageFormsUseCase, submit *usecase.SubmitFormUseCase) *FormHandler {
	return &FormHandler{Manage: manage, Submit: submit}
}

func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.Manage.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list(forms))
}

func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	form, err := h.Manage.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, form)
}

func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.FormInput
	if !decode(w, r, &input) {
		return
	}

	form, err := h.Manage.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, form)
}

func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.FormInput
	if !decode(w, r, &input) {
		return
	}

	form, err := h.Manage.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, form)
}

func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Manage.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FormHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Manage.ListSubmissions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list(subs))
}

// PublicGet handles GET /api/public/form/{slug}.
func (h *FormHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	form, err := h.Manage.ResolvePublic(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, form)
}

// PublicSubmit handles POST /api/public/form/{slug}/submit. The body is the raw field map.
func (h *FormHandler) PublicSubmit(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if !decode(w, r, &data) {
		return
	}

	out, err := h.Submit.Execute(r.Context(), chi.URLParam(r, "slug"), data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, out)
}
