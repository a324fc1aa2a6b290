// Package wire implements the compact binary format spoken on the review
// API. Integers are little-endian and fixed width, strings and lists carry a
// uint32 length prefix, enums travel as their 0-based ordinal in a uint32,
// and timestamps are a uint64 seconds + uint32 nanoseconds pair since the
// Unix epoch. Fields are laid out in struct declaration order with no names
// on the wire, so the layout here must not be reordered.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"booklib/internal/book"
	"booklib/internal/review"
)

var (
	// ErrShortBuffer means the payload ended before the value was complete.
	ErrShortBuffer = errors.New("wire: buffer too short")
	// ErrTrailingBytes means the payload continued past the decoded value.
	ErrTrailingBytes = errors.New("wire: trailing bytes after value")
)

// EncodeBook serializes a single book.
func EncodeBook(b book.Book) []byte {
	return appendBook(nil, b)
}

// EncodeBooks serializes a list of books with a leading element count.
func EncodeBooks(books []book.Book) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(len(books)))
	for _, b := range books {
		buf = appendBook(buf, b)
	}
	return buf
}

// EncodeReview serializes a single review.
func EncodeReview(rv review.Review) []byte {
	return appendReview(nil, rv)
}

// EncodeReviews serializes a list of reviews with a leading element count.
func EncodeReviews(reviews []review.Review) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, uint32(len(reviews)))
	for _, rv := range reviews {
		buf = appendReview(buf, rv)
	}
	return buf
}

// EncodeDraft serializes the partial-review payload used by create and
// update requests.
func EncodeDraft(d review.Draft) []byte {
	buf := binary.LittleEndian.AppendUint64(nil, uint64(d.ISBN))
	buf = appendString(buf, d.Username)
	buf = binary.LittleEndian.AppendUint32(buf, ratingOrdinal(d.Rating))
	buf = appendString(buf, d.Description)
	return buf
}

// DecodeBook parses exactly one book; leftover bytes are an error.
func DecodeBook(data []byte) (book.Book, error) {
	r := reader{buf: data}
	b, err := r.book()
	if err != nil {
		return book.Book{}, err
	}
	if err := r.expectEOF(); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

// DecodeBooks parses a length-prefixed list of books.
func DecodeBooks(data []byte) ([]book.Book, error) {
	r := reader{buf: data}
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	books := []book.Book{}
	for i := uint32(0); i < n; i++ {
		b, err := r.book()
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := r.expectEOF(); err != nil {
		return nil, err
	}
	return books, nil
}

// DecodeReview parses exactly one review; leftover bytes are an error.
func DecodeReview(data []byte) (review.Review, error) {
	r := reader{buf: data}
	rv, err := r.review()
	if err != nil {
		return review.Review{}, err
	}
	if err := r.expectEOF(); err != nil {
		return review.Review{}, err
	}
	return rv, nil
}

// DecodeReviews parses a length-prefixed list of reviews.
func DecodeReviews(data []byte) ([]review.Review, error) {
	r := reader{buf: data}
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	reviews := []review.Review{}
	for i := uint32(0); i < n; i++ {
		rv, err := r.review()
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	if err := r.expectEOF(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// DecodeDraft parses a partial-review payload.
func DecodeDraft(data []byte) (review.Draft, error) {
	r := reader{buf: data}
	var d review.Draft
	var err error
	if d.ISBN, err = r.i64(); err != nil {
		return review.Draft{}, err
	}
	if d.Username, err = r.str(); err != nil {
		return review.Draft{}, err
	}
	if d.Rating, err = r.rating(); err != nil {
		return review.Draft{}, err
	}
	if d.Description, err = r.str(); err != nil {
		return review.Draft{}, err
	}
	if err := r.expectEOF(); err != nil {
		return review.Draft{}, err
	}
	return d, nil
}

func appendBook(buf []byte, b book.Book) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(b.ISBN))
	buf = appendString(buf, b.Title)
	buf = appendString(buf, b.Author)
	buf = appendString(buf, b.Description)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(b.Language))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(b.IssueYear))
	return buf
}

func appendReview(buf []byte, rv review.Review) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(rv.ISBN))
	buf = appendString(buf, rv.Username)
	buf = binary.LittleEndian.AppendUint32(buf, ratingOrdinal(rv.Rating))
	buf = appendString(buf, rv.Description)
	buf = appendTime(buf, rv.CreatedAt)
	buf = appendTime(buf, rv.UpdatedAt)
	return buf
}

func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// appendTime writes an absolute timestamp. Times before the Unix epoch are
// not representable in this format.
func appendTime(buf []byte, t time.Time) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(t.Unix()))
	return binary.LittleEndian.AppendUint32(buf, uint32(t.Nanosecond()))
}

func ratingOrdinal(r review.Rating) uint32 {
	return uint32(r - review.One)
}

// reader walks a payload front to back. Every read is bounds-checked; a
// failed read reports ErrShortBuffer rather than producing zero values.
type reader struct {
	buf []byte
	off int
}

func (r *reader) take(n int) ([]byte, error) {
	if len(r.buf)-r.off < n {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) i64() (int64, error) {
	v, err := r.u64()
	return int64(v), err
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) language() (book.Language, error) {
	ord, err := r.u32()
	if err != nil {
		return 0, err
	}
	if ord >= uint32(book.NumLanguages) {
		return 0, fmt.Errorf("wire: language ordinal %d out of range", ord)
	}
	return book.Language(ord), nil
}

func (r *reader) rating() (review.Rating, error) {
	ord, err := r.u32()
	if err != nil {
		return 0, err
	}
	if ord >= uint32(review.NumRatings) {
		return 0, fmt.Errorf("wire: rating ordinal %d out of range", ord)
	}
	return review.One + review.Rating(ord), nil
}

func (r *reader) timestamp() (time.Time, error) {
	secs, err := r.u64()
	if err != nil {
		return time.Time{}, err
	}
	nanos, err := r.u32()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(secs), int64(nanos)).UTC(), nil
}

func (r *reader) book() (book.Book, error) {
	var b book.Book
	var err error
	if b.ISBN, err = r.i64(); err != nil {
		return book.Book{}, err
	}
	if b.Title, err = r.str(); err != nil {
		return book.Book{}, err
	}
	if b.Author, err = r.str(); err != nil {
		return book.Book{}, err
	}
	if b.Description, err = r.str(); err != nil {
		return book.Book{}, err
	}
	if b.Language, err = r.language(); err != nil {
		return book.Book{}, err
	}
	if b.IssueYear, err = r.i32(); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

func (r *reader) review() (review.Review, error) {
	var rv review.Review
	var err error
	if rv.ISBN, err = r.i64(); err != nil {
		return review.Review{}, err
	}
	if rv.Username, err = r.str(); err != nil {
		return review.Review{}, err
	}
	if rv.Rating, err = r.rating(); err != nil {
		return review.Review{}, err
	}
	if rv.Description, err = r.str(); err != nil {
		return review.Review{}, err
	}
	if rv.CreatedAt, err = r.timestamp(); err != nil {
		return review.Review{}, err
	}
	if rv.UpdatedAt, err = r.timestamp(); err != nil {
		return review.Review{}, err
	}
	return rv, nil
}

func (r *reader) expectEOF() error {
	if r.off != len(r.buf) {
		return ErrTrailingBytes
	}
	return nil
}
