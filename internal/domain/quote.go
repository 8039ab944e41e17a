// Package domain contains core business entities and rules.
package domain

import "strings"

// Quote is a short text attributed to an author, as held by the dashboard.
// This is a domain entity - it has no knowledge of the remote wire format.
type Quote struct {
	ID      string
	Content string
	Author  string
	Source  string

	// CategoryID is the flat category reference; Category is set when the
	// remote API embeds the full object. Either may be empty.
	CategoryID string
	Category   *Category

	Tags []Tag

	// LikesCount never goes below zero.
	LikesCount  int
	IsLiked     bool
	IsFavorited bool
}

// CategoryRef returns the category id from either representation.
func (q Quote) CategoryRef() string {
	if q.CategoryID != "" {
		return q.CategoryID
	}

	if q.Category != nil {
		return q.Category.ID
	}

	return ""
}

// HasTag reports whether the quote carries the tag with the given id.
func (q Quote) HasTag(id string) bool {
	for _, t := range q.Tags {
		if t.ID == id {
			return true
		}
	}

	return false
}

// TagIDs returns the ids of all tags on the quote.
func (q Quote) TagIDs() []string {
	ids := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		ids = append(ids, t.ID)
	}

	return ids
}

// Clone returns a deep copy so cached values never share slices with callers.
func (q Quote) Clone() Quote {
	c := q
	if q.Category != nil {
		cat := *q.Category
		c.Category = &cat
	}

	if q.Tags != nil {
		c.Tags = append([]Tag(nil), q.Tags...)
	}

	return c
}

// Category groups quotes.
type Category struct {
	ID   string
	Name string
}

// Tag labels quotes.
type Tag struct {
	ID   string
	Name string
}

// QuoteInput is the payload of the quote create/edit form.
type QuoteInput struct {
	Content    string
	Author     string
	Source     string
	CategoryID string
	TagIDs     []string
}

// Normalize trims the free-text fields.
func (in QuoteInput) Normalize() QuoteInput {
	in.Content = strings.TrimSpace(in.Content)
	in.Author = strings.TrimSpace(in.Author)
	in.Source = strings.TrimSpace(in.Source)

	return in
}

// Validate checks the fields the remote API always requires.
// It assumes Normalize has been applied.
func (in QuoteInput) Validate() error {
	if in.Content == "" {
		return NewValidationError("content", "Quote content is required")
	}

	if in.Author == "" {
		return NewValidationError("author", "Author name is required")
	}

	return nil
}

// InputFromQuote pre-fills an edit form from an existing quote.
func InputFromQuote(q Quote) QuoteInput {
	return QuoteInput{
		Content:    q.Content,
		Author:     q.Author,
		Source:     q.Source,
		CategoryID: q.CategoryRef(),
		TagIDs:     q.TagIDs(),
	}
}
