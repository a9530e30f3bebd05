package composer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"framecraft/internal/pkg/errors"
)

const (
	searchMinLen = 2
	searchMaxLen = 30
	titleMaxLen  = 100
)

var (
	searchPattern = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)
	// Titles end up inside HTML; markup characters and quotes are refused.
	titlePattern = regexp.MustCompile(`^[\p{L}\p{N} .,!?'&:;()\-]*$`)
)

// Submission is the form payload of a render request.
type Submission struct {
	Search string `json:"search"`
	Title  string `json:"title"`
	Style  string `json:"style"`
}

// Validate checks every field and reports all failures at once. On success
// it returns the parsed style.
func (s Submission) Validate() (Style, error) {
	var details []errors.FieldError
	fail := func(field, format string, args ...any) {
		details = append(details, errors.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch n := utf8.RuneCountInString(s.Search); {
	case s.Search == "":
		fail("search", `"search" is required`)
	case n < searchMinLen || n > searchMaxLen:
		fail("search", `"search" length must be between %d and %d characters`, searchMinLen, searchMaxLen)
	case !searchPattern.MatchString(s.Search):
		fail("search", `"search" may only contain letters, numbers and spaces`)
	}

	switch {
	case strings.TrimSpace(s.Title) == "":
		fail("title", `"title" is required`)
	case utf8.RuneCountInString(s.Title) > titleMaxLen:
		fail("title", `"title" length must be at most %d characters`, titleMaxLen)
	case !titlePattern.MatchString(s.Title):
		fail("title", `"title" contains characters that are not allowed`)
	}

	style, ok := ParseStyle(s.Style)
	if !ok {
		fail("style", `"style" must be one of [%s]`, strings.Join(styleNames[:], ", "))
	}

	if len(details) > 0 {
		return 0, errors.Validation("invalid submission", details...)
	}
	return style, nil
}

// ParseJobID accepts RFC 4122 UUIDs of version 4 or 5 and returns the
// canonical lowercase hyphenated form.
func ParseJobID(id string) (string, error) {
	const msg = `"id" must be a valid GUID`

	u, err := uuid.Parse(id)
	if err != nil || u.Variant() != uuid.RFC4122 {
		return "", errors.ValidationField("id", msg)
	}
	if v := u.Version(); v != 4 && v != 5 {
		return "", errors.ValidationField("id", msg)
	}
	return u.String(), nil
}
