package review

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrDuplicate is returned when a review already exists for the same
// (isbn, username) pair.
var ErrDuplicate = errors.New("review already exists")

// Rating is a star rating. The numeric value (1..5) is significant and is
// what consumers average and sort by; the text names One..Five are what the
// store persists.
type Rating int

const (
	One Rating = iota + 1
	Two
	Three
	Four
	Five
)

var ratingNames = [...]string{"One", "Two", "Three", "Four", "Five"}

// NumRatings is the number of rating variants.
const NumRatings = len(ratingNames)

// ParseRating maps a rating name to its variant. Matching is exact.
func ParseRating(s string) (Rating, bool) {
	for i, name := range ratingNames {
		if s == name {
			return Rating(i + 1), true
		}
	}
	return 0, false
}

func (r Rating) String() string {
	if r < One || r > Five {
		return fmt.Sprintf("Rating(%d)", int(r))
	}
	return ratingNames[r-1]
}

// Value implements driver.Valuer; ratings are stored as the enum's text name.
func (r Rating) Value() (driver.Value, error) {
	if r < One || r > Five {
		return nil, fmt.Errorf("invalid rating %d", int(r))
	}
	return ratingNames[r-1], nil
}

// Scan implements sql.Scanner for reading the rating enum back out.
func (r *Rating) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Rating", src)
	}
	parsed, ok := ParseRating(s)
	if !ok {
		return fmt.Errorf("unknown rating %q", s)
	}
	*r = parsed
	return nil
}

// Review is one user's review of one book, keyed by (ISBN, Username).
// CreatedAt is set once at creation; UpdatedAt moves on every update.
// The ISBN is not required to match an existing book.
type Review struct {
	ISBN        int64     `json:"isbn"`
	Username    string    `json:"username"`
	Rating      Rating    `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft is the client-supplied part of a review for create and update
// requests. Timestamps are deliberately absent: the server stamps them, so
// clients cannot forge creation or update times.
type Draft struct {
	ISBN        int64  `json:"isbn"`
	Username    string `json:"username" validate:"required,max=80"`
	Rating      Rating `json:"rating"`
	Description string `json:"description"`
}
