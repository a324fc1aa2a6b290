package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booklib/internal/review"
	"booklib/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var frozenNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newReviewHandler(repo ReviewRepository) *ReviewHandler {
	h := NewReviewHandler(repo)
	h.now = func() time.Time { return frozenNow }
	return h
}

var testDraft = review.Draft{
	ISBN:        9780747542155,
	Username:    "anon",
	Rating:      review.One,
	Description: "really good book",
}

func TestReviewCreate(t *testing.T) {
	t.Run("stamps both timestamps with the server clock", func(t *testing.T) {
		repo := &mockReviewRepo{}
		repo.On("Create", mock.Anything, review.Review{
			ISBN:        testDraft.ISBN,
			Username:    testDraft.Username,
			Rating:      testDraft.Rating,
			Description: testDraft.Description,
			CreatedAt:   frozenNow,
			UpdatedAt:   frozenNow,
		}).Return(int64(1), nil)

		h := newReviewHandler(repo)
		r := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(wire.EncodeDraft(testDraft)))
		w := serve(h.Register, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Body.Bytes())
		repo.AssertExpectations(t)
	})

	t.Run("duplicate composite key is a conflict", func(t *testing.T) {
		repo := &mockReviewRepo{}
		repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), review.ErrDuplicate)

		r := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(wire.EncodeDraft(testDraft)))
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed payload is rejected without a repo call", func(t *testing.T) {
		repo := &mockReviewRepo{}

		buf := wire.EncodeDraft(testDraft)
		r := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(buf[:len(buf)-3]))
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty username fails validation", func(t *testing.T) {
		repo := &mockReviewRepo{}

		d := testDraft
		d.Username = ""
		r := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(wire.EncodeDraft(d)))
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReviewListByBook(t *testing.T) {
	stored := []review.Review{{
		ISBN:        9780747542155,
		Username:    "anon",
		Rating:      review.Five,
		Description: "really good book",
		CreatedAt:   frozenNow,
		UpdatedAt:   frozenNow,
	}}

	t.Run("returns encoded reviews", func(t *testing.T) {
		repo := &mockReviewRepo{}
		repo.On("ByBook", mock.Anything, int64(9780747542155)).Return(stored, nil)

		r := httptest.NewRequest(http.MethodGet, "/reviews/book/9780747542155", nil)
		w := serve(newReviewHandler(repo).Register, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))

		body, _ := io.ReadAll(w.Body)
		decoded, err := wire.DecodeReviews(body)
		require.NoError(t, err)
		assert.Equal(t, stored, decoded)
	})

	t.Run("empty result encodes an empty list", func(t *testing.T) {
		repo := &mockReviewRepo{}
		repo.On("ByBook", mock.Anything, int64(9780747542155)).Return([]review.Review{}, nil)

		r := httptest.NewRequest(http.MethodGet, "/reviews/book/9780747542155", nil)
		w := serve(newReviewHandler(repo).Register, r)

		require.Equal(t, http.StatusOK, w.Code)
		decoded, err := wire.DecodeReviews(w.Body.Bytes())
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})

	t.Run("non-integer isbn is a bad request", func(t *testing.T) {
		repo := &mockReviewRepo{}

		r := httptest.NewRequest(http.MethodGet, "/reviews/book/not-a-number", nil)
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReviewListByUsername(t *testing.T) {
	stored := []review.Review{{
		ISBN:        9780747542155,
		Username:    "anon",
		Rating:      review.Five,
		Description: "really good book",
		CreatedAt:   frozenNow,
		UpdatedAt:   frozenNow,
	}}

	repo := &mockReviewRepo{}
	repo.On("ByUsername", mock.Anything, "anon").Return(stored, nil)

	r := httptest.NewRequest(http.MethodGet, "/reviews/user/anon", nil)
	w := serve(newReviewHandler(repo).Register, r)

	require.Equal(t, http.StatusOK, w.Code)
	decoded, err := wire.DecodeReviews(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, stored, decoded)
}

func TestReviewUpdate(t *testing.T) {
	t.Run("stamps only updated_at", func(t *testing.T) {
		repo := &mockReviewRepo{}
		repo.On("Update", mock.Anything, testDraft.ISBN, testDraft.Username,
			testDraft.Description, testDraft.Rating, frozenNow).Return(int64(1), nil)

		r := httptest.NewRequest(http.MethodPut, "/reviews", bytes.NewReader(wire.EncodeDraft(testDraft)))
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("zero rows affected means not found", func(t *testing.T) {
		repo := &mockReviewRepo{}
		repo.On("Update", mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		r := httptest.NewRequest(http.MethodPut, "/reviews", bytes.NewReader(wire.EncodeDraft(testDraft)))
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReviewDelete(t *testing.T) {
	t.Run("deletes by composite key", func(t *testing.T) {
		repo := &mockReviewRepo{}
		repo.On("Delete", mock.Anything, int64(9780747542155), "anon").Return(int64(1), nil)

		r := httptest.NewRequest(http.MethodDelete, "/reviews/9780747542155/anon", nil)
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("zero rows affected means not found", func(t *testing.T) {
		repo := &mockReviewRepo{}
		repo.On("Delete", mock.Anything, int64(9780747542155), "anon").Return(int64(0), nil)

		r := httptest.NewRequest(http.MethodDelete, "/reviews/9780747542155/anon", nil)
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-integer isbn is a bad request", func(t *testing.T) {
		repo := &mockReviewRepo{}

		r := httptest.NewRequest(http.MethodDelete, "/reviews/xyz/anon", nil)
		w := serve(newReviewHandler(repo).Register, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
