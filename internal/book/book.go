package book

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrDuplicate is returned when a book with the same ISBN already exists.
var ErrDuplicate = errors.New("book already exists")

// Language is the closed set of catalog languages. The zero value is English.
type Language int

const (
	English Language = iota
	Russian
	Ukrainian
	German
	Chinese
	Japanese

	numLanguages
)

// NumLanguages is the number of language variants.
const NumLanguages = int(numLanguages)

var languageNames = [numLanguages]string{
	English:   "English",
	Russian:   "Russian",
	Ukrainian: "Ukrainian",
	German:    "German",
	Chinese:   "Chinese",
	Japanese:  "Japanese",
}

// ParseLanguage maps a language name to its variant. Matching is exact: no
// case folding, no abbreviations.
func ParseLanguage(s string) (Language, bool) {
	for l, name := range languageNames {
		if s == name {
			return Language(l), true
		}
	}
	return 0, false
}

func (l Language) String() string {
	if l < 0 || l >= numLanguages {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return languageNames[l]
}

// Value implements driver.Valuer so a Language binds directly as a statement
// parameter (stored as the enum's text name).
func (l Language) Value() (driver.Value, error) {
	if l < 0 || l >= numLanguages {
		return nil, fmt.Errorf("invalid language %d", int(l))
	}
	return languageNames[l], nil
}

// Scan implements sql.Scanner for reading the lang enum back out.
func (l *Language) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Language", src)
	}
	parsed, ok := ParseLanguage(s)
	if !ok {
		return fmt.Errorf("unknown language %q", s)
	}
	*l = parsed
	return nil
}

// Book is a catalog entry. ISBN is the validated numeric form of the
// 13-digit code and is immutable once created; replacing a book is a
// delete-then-recreate on the caller's side.
type Book struct {
	ISBN        int64    `json:"isbn"`
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Description string   `json:"description"`
	Language    Language `json:"language"`
	IssueYear   int32    `json:"issue_year"`
}
