package dto

import (
	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/domain"
)

// NamedResponse is a tag or category.
type NamedResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QuoteResponse is a quote as the dashboard renders it.
type QuoteResponse struct {
	ID          string          `json:"id"`
	Content     string          `json:"content"`
	Author      string          `json:"author"`
	Source      string          `json:"source,omitempty"`
	CategoryID  string          `json:"categoryId,omitempty"`
	Category    *NamedResponse  `json:"category,omitempty"`
	Tags        []NamedResponse `json:"tags"`
	LikesCount  int             `json:"likesCount"`
	IsLiked     bool            `json:"isLiked"`
	IsFavorited bool            `json:"isFavorited"`
}

// UserResponse is the signed in user's profile.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionResponse answers the session endpoints. The token never leaves
// the process.
type SessionResponse struct {
	User    UserResponse `json:"user"`
	Landing string       `json:"landing"`
}

// DashboardResponse is the loaded dashboard.
type DashboardResponse struct {
	User       UserResponse    `json:"user"`
	Landing    string          `json:"landing"`
	Loading    bool            `json:"loading"`
	Quotes     []QuoteResponse `json:"quotes"`
	Favorites  []QuoteResponse `json:"favorites"`
	Categories []NamedResponse `json:"categories"`
	Tags       []NamedResponse `json:"tags"`
}

// ViewResponse is a derived view with the side that produced it.
type ViewResponse[T any] struct {
	Data   T      `json:"data"`
	Source string `json:"source"`
}

// CatalogResponse is the admin view.
type CatalogResponse struct {
	Tags       []NamedResponse `json:"tags"`
	Categories []NamedResponse `json:"categories"`
}

// FormResponse is the quote form state.
type FormResponse struct {
	State   string       `json:"state"`
	QuoteID string       `json:"quoteId,omitempty"`
	Input   QuoteRequest `json:"input"`
	Error   string       `json:"error,omitempty"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:          q.ID,
		Content:     q.Content,
		Author:      q.Author,
		Source:      q.Source,
		CategoryID:  q.CategoryRef(),
		Tags:        make([]NamedResponse, 0, len(q.Tags)),
		LikesCount:  q.LikesCount,
		IsLiked:     q.IsLiked,
		IsFavorited: q.IsFavorited,
	}

	if q.Category != nil {
		resp.Category = &NamedResponse{ID: q.Category.ID, Name: q.Category.Name}
	}

	for _, t := range q.Tags {
		resp.Tags = append(resp.Tags, NamedResponse{ID: t.ID, Name: t.Name})
	}

	return resp
}

// NewQuoteList converts a slice of quotes; the result is never nil.
func NewQuoteList(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, NewQuoteResponse(&quotes[i]))
	}

	return out
}

// NewCategoryList converts categories.
func NewCategoryList(cats []domain.Category) []NamedResponse {
	out := make([]NamedResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, NamedResponse{ID: c.ID, Name: c.Name})
	}

	return out
}

// NewTagList converts tags.
func NewTagList(tags []domain.Tag) []NamedResponse {
	out := make([]NamedResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, NamedResponse{ID: t.ID, Name: t.Name})
	}

	return out
}

// NewUserResponse converts a user profile.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// NewSessionResponse converts a session and its landing view.
func NewSessionResponse(s domain.Session, landing string) SessionResponse {
	return SessionResponse{User: NewUserResponse(s.User), Landing: landing}
}

// NewDashboardResponse converts a dashboard view.
func NewDashboardResponse(v app.DashboardView) DashboardResponse {
	return DashboardResponse{
		User:       NewUserResponse(v.User),
		Landing:    v.Landing,
		Loading:    v.Loading,
		Quotes:     NewQuoteList(v.Quotes),
		Favorites:  NewQuoteList(v.Favorites),
		Categories: NewCategoryList(v.Categories),
		Tags:       NewTagList(v.Tags),
	}
}

// NewCatalogResponse converts the admin catalog.
func NewCatalogResponse(c app.Catalog) CatalogResponse {
	return CatalogResponse{Tags: NewTagList(c.Tags), Categories: NewCategoryList(c.Categories)}
}

// NewFormResponse converts the form state.
func NewFormResponse(v app.FormView) FormResponse {
	resp := FormResponse{
		State:   string(v.State),
		QuoteID: v.QuoteID,
		Input: QuoteRequest{
			Content:    v.Input.Content,
			Author:     v.Input.Author,
			Source:     v.Input.Source,
			CategoryID: v.Input.CategoryID,
			TagIDs:     v.Input.TagIDs,
		},
	}

	if resp.Input.TagIDs == nil {
		resp.Input.TagIDs = []string{}
	}

	if v.Err != nil {
		resp.Error = app.Describe("save quote", v.Err)
	}

	return resp
}
