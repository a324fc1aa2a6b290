package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores reviews in the reviews table under the composite key
// (isbn, username). Every operation is a single statement; concurrent writers
// racing on the same key are decided by the store's constraints, and the
// loser sees either ErrDuplicate or a zero row count.
type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// Create inserts a review with caller-stamped timestamps and returns the
// number of rows affected. A second review for the same (isbn, username)
// fails with ErrDuplicate.
func (repo *PostgresRepo) Create(ctx context.Context, rv Review) (int64, error) {
	const query = `
		INSERT INTO reviews (isbn, username, rating, description, created_at, updated_at)
		VALUES ($1, $2, $3::rating, $4, $5, $6)
	`
	tag, err := repo.db.Exec(ctx, query,
		rv.ISBN, rv.Username, rv.Rating, rv.Description, rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ByBook returns all reviews for one ISBN. No reviews is an empty slice.
func (repo *PostgresRepo) ByBook(ctx context.Context, isbn int64) ([]Review, error) {
	const query = `
		SELECT isbn, username, rating::text, description, created_at, updated_at
		FROM reviews
		WHERE isbn = $1
	`
	rows, err := repo.db.Query(ctx, query, isbn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ByUsername returns all reviews written by one user.
func (repo *PostgresRepo) ByUsername(ctx context.Context, username string) ([]Review, error) {
	const query = `
		SELECT isbn, username, rating::text, description, created_at, updated_at
		FROM reviews
		WHERE username = $1
	`
	rows, err := repo.db.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Update overwrites the mutable fields of the review identified by the
// composite key. created_at is never touched. A zero row count means the
// review does not exist.
func (repo *PostgresRepo) Update(ctx context.Context, isbn int64, username, description string, rating Rating, updatedAt time.Time) (int64, error) {
	const query = `
		UPDATE reviews
		SET rating = $3::rating, description = $4, updated_at = $5
		WHERE isbn = $1 AND username = $2
	`
	tag, err := repo.db.Exec(ctx, query, isbn, username, rating, description, updatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes the review identified by the composite key. Deleting an
// absent review is not an error; the row count is zero.
func (repo *PostgresRepo) Delete(ctx context.Context, isbn int64, username string) (int64, error) {
	tag, err := repo.db.Exec(ctx,
		`DELETE FROM reviews WHERE isbn = $1 AND username = $2`, isbn, username)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collect(rows pgx.Rows) ([]Review, error) {
	reviews := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ISBN, &rv.Username, &rv.Rating, &rv.Description, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
