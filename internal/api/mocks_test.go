package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"booklib/internal/book"
	"booklib/internal/review"

	"github.com/stretchr/testify/mock"
)

type mockBookRepo struct {
	mock.Mock
}

func (m *mockBookRepo) Create(ctx context.Context, b book.Book) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookRepo) Delete(ctx context.Context, isbn int64) (int64, error) {
	args := m.Called(ctx, isbn)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookRepo) Get(ctx context.Context, isbn int64) (book.Book, error) {
	args := m.Called(ctx, isbn)
	return args.Get(0).(book.Book), args.Error(1)
}

func (m *mockBookRepo) List(ctx context.Context) ([]book.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]book.Book), args.Error(1)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, rv review.Review) (int64, error) {
	args := m.Called(ctx, rv)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepo) ByBook(ctx context.Context, isbn int64) ([]review.Review, error) {
	args := m.Called(ctx, isbn)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *mockReviewRepo) ByUsername(ctx context.Context, username string) ([]review.Review, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, isbn int64, username, description string, rating review.Rating, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, isbn, username, description, rating, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepo) Delete(ctx context.Context, isbn int64, username string) (int64, error) {
	args := m.Called(ctx, isbn, username)
	return args.Get(0).(int64), args.Error(1)
}

// serve routes the request through the real mux patterns so PathValue works
// the same as in production.
func serve(register func(mux *http.ServeMux), r *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	register(mux)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}
