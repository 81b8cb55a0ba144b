package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/log"
	"github.com/xavierca1/financekeem/internal/usecase"
)

type ErrorResponse struct {
	Error  string                    `json:"error"`
	Code   string                    `json:"code,omitempty"`
	Fields []usecase.ValidationError `json:"fields,omitempty"`
}

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respond(w, r, status, ErrorResponse{Error: msg})
}

// respondError maps use case errors onto status codes.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var de *usecase.DomainError
	switch {
	case errors.As(err, &de):
		respond(w, r, http.StatusBadRequest, ErrorResponse{Error: de.Message, Code: de.Code, Fields: de.Fields})
	case errors.Is(err, entity.ErrNotFound):
		respondMessage(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, entity.ErrConflict):
		respondMessage(w, r, http.StatusConflict, "already exists")
	case errors.Is(err, entity.ErrStorageUnavailable):
		log.WithError(err).WithField("path", r.URL.Path).Warn("storage unavailable")
		respondMessage(w, r, http.StatusServiceUnavailable, "storage unavailable, try again")
	default:
		log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		respondMessage(w, r, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		respondMessage(w, r, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

func list[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}
