package dto

import (
	"strings"

	"github.com/jsamuelsen/quotedash/internal/domain"
)

// LoginRequest is the body of POST /session/login. Presence checks happen
// in the domain so the messages match the other surfaces.
type LoginRequest struct {
	Email    string `json:"email"    validate:"max=255"`
	Password string `json:"password" validate:"max=255"`
}

// ToDomain converts the request.
func (r *LoginRequest) ToDomain() domain.Credentials {
	return domain.Credentials{Email: strings.TrimSpace(r.Email), Password: r.Password}
}

// RegisterRequest is the body of POST /session/register.
type RegisterRequest struct {
	Name                 string `json:"name"                  validate:"max=255"`
	Email                string `json:"email"                 validate:"max=255"`
	Password             string `json:"password"              validate:"max=255"`
	PasswordConfirmation string `json:"password_confirmation" validate:"max=255"`
}

// ToDomain converts the request.
func (r *RegisterRequest) ToDomain() domain.Registration {
	return domain.Registration{
		Name:                 strings.TrimSpace(r.Name),
		Email:                strings.TrimSpace(r.Email),
		Password:             r.Password,
		PasswordConfirmation: r.PasswordConfirmation,
	}
}

// QuoteRequest is the quote form payload.
type QuoteRequest struct {
	Content    string   `json:"content"`
	Author     string   `json:"author"`
	Source     string   `json:"source"`
	CategoryID string   `json:"categoryId"`
	TagIDs     []string `json:"tagIds" validate:"omitempty,dive,notblank"`
}

// ToDomain converts the request.
func (r *QuoteRequest) ToDomain() domain.QuoteInput {
	return domain.QuoteInput{
		Content:    r.Content,
		Author:     r.Author,
		Source:     r.Source,
		CategoryID: r.CategoryID,
		TagIDs:     r.TagIDs,
	}
}

// NameRequest creates or renames a tag or category. An empty name is
// reported by the orchestrator with its own message.
type NameRequest struct {
	Name string `json:"name" validate:"max=255"`
}

// OpenFormRequest opens the quote form. An empty QuoteID opens a blank form.
type OpenFormRequest struct {
	QuoteID string `json:"quoteId"`
}

// QuoteFilterRequest is the query of GET /quotes.
type QuoteFilterRequest struct {
	Length   string `form:"length"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Search   string `form:"search"   validate:"max=200"`

	PaginationRequest
}

// ToDomain converts the query to a filter.
func (r *QuoteFilterRequest) ToDomain() (domain.Filter, error) {
	length, err := domain.ParseLengthBucket(r.Length)
	if err != nil {
		return domain.Filter{}, err
	}

	return domain.Filter{
		Length:   length,
		Category: r.Category,
		Tag:      r.Tag,
		Search:   strings.TrimSpace(r.Search),
	}, nil
}
