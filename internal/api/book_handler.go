package api

import (
	"errors"
	"io"
	"net/http"

	"booklib/internal/book"
	"booklib/internal/httpx"
	"booklib/internal/isbn"
	"booklib/internal/wire"
)

// BookHandler serves the catalog endpoints. ISBNs arrive as 13-digit strings
// in paths and are checksum-validated before touching the store; a book
// update is a client-side delete-then-create, so there is no PATCH.
type BookHandler struct {
	repo BookRepository
}

func NewBookHandler(repo BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

func (h *BookHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("GET /books/{isbn}", h.Get)
	mux.HandleFunc("DELETE /books/{isbn}", h.Delete)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "bad_body", "Could not read request body")
		return
	}
	b, err := wire.DecodeBook(body)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "bad_payload", "Malformed book payload")
		return
	}
	if !isbn.Valid(b.ISBN) {
		httpx.Error(w, r, http.StatusBadRequest, "bad_isbn", "ISBN fails the ISBN-13 checksum")
		return
	}
	if err := validate.Struct(b); err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "invalid_book", "Book fields failed validation")
		return
	}

	if _, err := h.repo.Create(r.Context(), b); err != nil {
		if errors.Is(err, book.ErrDuplicate) {
			httpx.Error(w, r, http.StatusConflict, "book_exists", "A book with this ISBN already exists")
			return
		}
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not create book")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.repo.List(r.Context())
	if err != nil {
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not load books")
		return
	}
	httpx.Binary(w, wire.EncodeBooks(books))
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	code, ok := h.parseISBN(w, r)
	if !ok {
		return
	}
	b, err := h.repo.Get(r.Context(), code)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			httpx.Error(w, r, http.StatusNotFound, "book_not_found", "No book with this ISBN")
			return
		}
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not load book")
		return
	}
	httpx.Binary(w, wire.EncodeBook(b))
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code, ok := h.parseISBN(w, r)
	if !ok {
		return
	}
	affected, err := h.repo.Delete(r.Context(), code)
	if err != nil {
		httpx.Error(w, r, http.StatusInternalServerError, "store_error", "Could not delete book")
		return
	}
	if affected == 0 {
		httpx.Error(w, r, http.StatusNotFound, "book_not_found", "No book with this ISBN")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) parseISBN(w http.ResponseWriter, r *http.Request) (int64, bool) {
	code, ok := isbn.Parse(r.PathValue("isbn"))
	if !ok {
		httpx.Error(w, r, http.StatusBadRequest, "bad_isbn", "ISBN must be 13 digits with a valid checksum")
		return 0, false
	}
	return code, true
}
