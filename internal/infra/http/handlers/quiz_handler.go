package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/financekeem/internal/usecase"
)

type QuizHandler struct {
	Manage *usecase.ManageQuizzesUseCase
	Submit *usecase.SubmitQuizUseCase
}

func NewQuizHandler(manage *usecase.ManageQuizzesUseCase, submit *usecase.SubmitQuizUseCase) *QuizHandler {
	return &QuizHandler{Manage: manage, Submit: submit}
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.Manage.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list(quizzes))
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.Manage.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, quiz)
}

func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.QuizInput
	if !decode(w, r, &input) {
		return
	}

	quiz, err := h.Manage.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, quiz)
}

func (h *QuizHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.QuizInput
	if !decode(w, r, &input) {
		return
	}

	quiz, err := h.Manage.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, quiz)
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Manage.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Responses lists responses of one quiz, or of every quiz when routed without {id}.
func (h *QuizHandler) Responses(w http.ResponseWriter, r *http.Request) {
	responses, err := h.Manage.ListResponses(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list(responses))
}

func (h *QuizHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.Manage.ResolvePublic(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, quiz)
}

func (h *QuizHandler) PublicSubmit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitQuizInput
	if !decode(w, r, &input) {
		return
	}

	out, err := h.Submit.Execute(r.Context(), chi.URLParam(r, "slug"), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, out)
}
