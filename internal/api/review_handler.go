package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"booklib/internal/httpx"
	"booklib/internal/review"
	"booklib/internal/wire"
)

// ReviewHandler serves the review endpoints. Timestamps are stamped here, at
// request-processing time, so the server owns time authority; clients only
// ever send the Draft payload.
type ReviewHandler struct {
	repo ReviewRepository
	now  func() time.Time
}

func NewReviewHandler(repo ReviewRepository) *ReviewHandler {
	return &ReviewHandler{repo: repo, now: time.Now}
}

func (h *ReviewHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /reviews", h.Create)
	mux.HandleFunc("PUT /reviews", h.Update)
	mux.HandleFunc("GET /reviews/book/{isbn}", h.ListByBook)
	mux.HandleFunc("GET /reviews/user/{username}", h.ListByUsername)
	mux.HandleFunc("DELETE /reviews/{isbn}/{username}", h.Delete)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	now := h.now().UTC()
	rv := review.Review{
		ISBN:        draft.ISBN,
		Username:    draft.Username,
		Rating:      draft.Rating,
		Description: draft.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := h.repo.Create(r.Context(), rv); err != nil {
		if errors.Is(err, review.ErrDuplicate) {
			httpx.Error(w, r, http.StatusConflict, "review_exists", "Review for this book and user already exists")
			return
		}
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not create review")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	affected, err := h.repo.Update(r.Context(), draft.ISBN, draft.Username, draft.Description, draft.Rating, h.now().UTC())
	if err != nil {
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not update review")
		return
	}
	if affected == 0 {
		httpx.Error(w, r, http.StatusNotFound, "review_not_found", "No review for this book and user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	isbn, err := strconv.ParseInt(r.PathValue("isbn"), 10, 64)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "bad_isbn", "ISBN path segment must be an integer")
		return
	}
	reviews, err := h.repo.ByBook(r.Context(), isbn)
	if err != nil {
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not load reviews")
		return
	}
	httpx.Binary(w, wire.EncodeReviews(reviews))
}

func (h *ReviewHandler) ListByUsername(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.repo.ByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not load reviews")
		return
	}
	httpx.Binary(w, wire.EncodeReviews(reviews))
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	isbn, err := strconv.ParseInt(r.PathValue("isbn"), 10, 64)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "bad_isbn", "ISBN path segment must be an integer")
		return
	}
	affected, err := h.repo.Delete(r.Context(), isbn, r.PathValue("username"))
	if err != nil {
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not delete review")
		return
	}
	if affected == 0 {
		httpx.Error(w, r, http.StatusNotFound, "review_not_found", "No review for this book and user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeDraft reads and validates the binary partial-review payload. A
// malformed payload fails the request; the decoder never fills in defaults.
func (h *ReviewHandler) decodeDraft(w http.ResponseWriter, r *http.Request) (review.Draft, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "bad_body", "Could not read request body")
		return review.Draft{}, false
	}
	draft, err := wire.DecodeDraft(body)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "bad_payload", "Malformed review payload")
		return review.Draft{}, false
	}
	if err := validate.Struct(draft); err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "invalid_review", "Review fields failed validation")
		return review.Draft{}, false
	}
	return draft, true
}
