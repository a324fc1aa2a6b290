package book

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores books in the books table, keyed by ISBN. Every
// operation is a single statement against a pooled connection.
type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// Create inserts a new book and returns the number of rows affected (1 on
// success). A second insert with the same ISBN fails with ErrDuplicate.
func (repo *PostgresRepo) Create(ctx context.Context, b Book) (int64, error) {
	const query = `
		INSERT INTO books (isbn, title, author, description, language, issue_year)
		VALUES ($1, $2, $3, $4, $5::lang, $6)
	`
	tag, err := repo.db.Exec(ctx, query, b.ISBN, b.Title, b.Author, b.Description, b.Language, b.IssueYear)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a book by ISBN. Deleting an absent ISBN is not an error;
// callers distinguish it by the zero row count.
func (repo *PostgresRepo) Delete(ctx context.Context, isbn int64) (int64, error) {
	tag, err := repo.db.Exec(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Get returns the book with the given ISBN, or ErrNotFound.
func (repo *PostgresRepo) Get(ctx context.Context, isbn int64) (Book, error) {
	const query = `
		SELECT isbn, title, author, description, language::text, issue_year
		FROM books
		WHERE isbn = $1
	`
	var b Book
	err := repo.db.QueryRow(ctx, query, isbn).Scan(
		&b.ISBN, &b.Title, &b.Author, &b.Description, &b.Language, &b.IssueYear,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// List returns every book in the catalog. An empty catalog yields an empty
// slice, not an error.
func (repo *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	const query = `
		SELECT isbn, title, author, description, language::text, issue_year
		FROM books
		ORDER BY isbn
	`
	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.Description, &b.Language, &b.IssueYear); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
