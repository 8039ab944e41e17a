package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LengthBucket classifies quotes by content length.
type LengthBucket string

// Length buckets. Short is under 100 characters, medium is 100 to 300
// inclusive, long is over 300.
const (
	LengthAll    LengthBucket = "all"
	LengthShort  LengthBucket = "short"
	LengthMedium LengthBucket = "medium"
	LengthLong   LengthBucket = "long"
)

const (
	shortLimit = 100
	longLimit  = 300
)

// ParseLengthBucket accepts the bucket names, treating "" as all.
func ParseLengthBucket(s string) (LengthBucket, error) {
	switch LengthBucket(strings.ToLower(strings.TrimSpace(s))) {
	case "", LengthAll:
		return LengthAll, nil
	case LengthShort:
		return LengthShort, nil
	case LengthMedium:
		return LengthMedium, nil
	case LengthLong:
		return LengthLong, nil
	default:
		return "", NewValidationError("length", fmt.Sprintf("unknown length %q", s))
	}
}

// Contains reports whether a content length in characters falls in the bucket.
func (b LengthBucket) Contains(n int) bool {
	switch b {
	case LengthShort:
		return n < shortLimit
	case LengthMedium:
		return n >= shortLimit && n <= longLimit
	case LengthLong:
		return n > longLimit
	default:
		return true
	}
}

// Filter narrows the quote list. Zero values place no constraint.
type Filter struct {
	Length   LengthBucket
	Category string
	Tag      string
	Search   string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return (f.Length == "" || f.Length == LengthAll) && f.Category == "" && f.Tag == "" && f.Search == ""
}

// Matches applies every constraint conjunctively.
func (f Filter) Matches(q Quote) bool {
	if !f.Length.Contains(utf8.RuneCountInString(q.Content)) {
		return false
	}

	if f.Category != "" && q.CategoryID != f.Category && (q.Category == nil || q.Category.ID != f.Category) {
		return false
	}

	if f.Tag != "" && !q.HasTag(f.Tag) {
		return false
	}

	if f.Search != "" && !strings.Contains(strings.ToLower(q.Content), strings.ToLower(f.Search)) {
		return false
	}

	return true
}

// Apply returns the quotes that match, preserving order.
func (f Filter) Apply(quotes []Quote) []Quote {
	if f.IsZero() {
		return quotes
	}

	out := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if f.Matches(q) {
			out = append(out, q)
		}
	}

	return out
}
