package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/financekeem/internal/usecase"
)

type BookingHandler struct {
	Pages    *usecase.ManageBookingPagesUseCase
	Bookings *usecase.ManageBookingsUseCase
	Book     *usecase.CreateBookingUseCase
}

func NewBookingHandler(pages *usecase.ManageBookingPagesUseCase, bookings *usecase.ManageBookingsUseCase, book *usecase.CreateBookingUseCase) *BookingHandler {
	return &BookingHandler{Pages: pages, Bookings: bookings, Book: book}
}

func (h *BookingHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.Pages.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list(pages))
}

func (h *BookingHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.Pages.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, page)
}

func (h *BookingHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var input usecase.BookingPageInput
	if !decode(w, r, &input) {
		return
	}

	page, err := h.Pages.Create(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, page)
}

func (h *BookingHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var input usecase.BookingPageInput
	if !decode(w, r, &input) {
		return
	}

	page, err := h.Pages.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, page)
}

func (h *BookingHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.Pages.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.List(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list(bookings))
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.Bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, booking)
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateBookingInput
	if !decode(w, r, &input) {
		return
	}

	booking, err := h.Bookings.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, booking)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Bookings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Create books a meeting. A repeated request for the same client and slot answers 200 with the existing booking.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateBookingInput
	if !decode(w, r, &input) {
		return
	}
	h.create(w, r, input)
}

func (h *BookingHandler) create(w http.ResponseWriter, r *http.Request, input usecase.CreateBookingInput) {
	out, err := h.Book.Execute(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	status := http.StatusCreated
	if out.Duplicate {
		status = http.StatusOK
	}
	respond(w, r, status, out)
}

func (h *BookingHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	page, err := h.Pages.ResolvePublic(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, page)
}

type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// PublicSlots handles GET /api/public/book/{slug}/slots?date=YYYY-MM-DD.
func (h *BookingHandler) PublicSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	slots, err := h.Pages.Slots(r.Context(), chi.URLParam(r, "slug"), date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, SlotsResponse{Date: date, Slots: slots})
}

// PublicBook handles POST /api/public/book/{slug}. The page comes from the slug, not the body.
func (h *BookingHandler) PublicBook(w http.ResponseWriter, r *http.Request) {
	page, err := h.Pages.ResolvePublic(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var input usecase.CreateBookingInput
	if !decode(w, r, &input) {
		return
	}
	input.BookingPageID = page.ID
	if input.BookingType == "" {
		input.BookingType = page.Name
	}
	h.create(w, r, input)
}
