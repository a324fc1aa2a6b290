// Package api exposes the catalog and review operations over HTTP using the
// binary wire format. Handlers are stateless: decode, one repository call,
// encode.
package api

import (
	"context"
	"time"

	"booklib/internal/book"
	"booklib/internal/review"

	"github.com/go-playground/validator/v10"
)

// BookRepository is the catalog storage contract the handlers depend on.
type BookRepository interface {
	Create(ctx context.Context, b book.Book) (int64, error)
	Delete(ctx context.Context, isbn int64) (int64, error)
	Get(ctx context.Context, isbn int64) (book.Book, error)
	List(ctx context.Context) ([]book.Book, error)
}

// ReviewRepository is the review storage contract the handlers depend on.
// Update and Delete report absence through a zero row count, not an error.
type ReviewRepository interface {
	Create(ctx context.Context, rv review.Review) (int64, error)
	ByBook(ctx context.Context, isbn int64) ([]review.Review, error)
	ByUsername(ctx context.Context, username string) ([]review.Review, error)
	Update(ctx context.Context, isbn int64, username, description string, rating review.Rating, updatedAt time.Time) (int64, error)
	Delete(ctx context.Context, isbn int64, username string) (int64, error)
}

var validate = validator.New()
