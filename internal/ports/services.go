// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never wire DTOs
//   - Error returns use domain error types (ErrUnauthorized, ErrValidation, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/quotedash/internal/domain"
)

// AuthAPI issues sessions. These calls are the only ones allowed without a token.
type AuthAPI interface {
	// Login exchanges credentials for a session.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// Register creates an account and returns its session.
	// Returns a *domain.ValidationError carrying per-field messages on 422.
	Register(ctx context.Context, reg domain.Registration) (*domain.Session, error)
}

// QuoteAPI is the remote quote collection. Every method requires a session;
// a 401/403 response clears it and returns domain.ErrUnauthorized.
type QuoteAPI interface {
	ListQuotes(ctx context.Context) ([]domain.Quote, error)
	ListFavorites(ctx context.Context) ([]domain.Quote, error)
	RandomQuote(ctx context.Context) (*domain.Quote, error)
	PopularQuotes(ctx context.Context) ([]domain.Quote, error)

	CreateQuote(ctx context.Context, in domain.QuoteInput) (*domain.Quote, error)
	UpdateQuote(ctx context.Context, id string, in domain.QuoteInput) (*domain.Quote, error)
	DeleteQuote(ctx context.Context, id string) error

	// LikeQuote records a like. The response body carries no quote state.
	LikeQuote(ctx context.Context, id string) error

	// FavoriteQuote toggles the favorite flag server side.
	FavoriteQuote(ctx context.Context, id string) error
}

// CatalogAPI manages categories and tags.
type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListTags(ctx context.Context) ([]domain.Tag, error)
	CreateTag(ctx context.Context, name string) (*domain.Tag, error)
	UpdateTag(ctx context.Context, id, name string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// RemoteAPI is the full surface of the remote quote service.
type RemoteAPI interface {
	AuthAPI
	QuoteAPI
	CatalogAPI
}

// CredentialStore persists the session between process runs.
// Save and Clear are atomic: token and profile are written or removed together.
type CredentialStore interface {
	Save(ctx context.Context, s domain.Session) error

	// Load returns domain.ErrNotFound when no token is stored.
	Load(ctx context.Context) (*domain.Session, error)

	Clear(ctx context.Context) error
}

// SessionHolder is the read side of the credential holder plus its single
// invalidation hook. Gateways read the token per request and call Invalidate
// when the remote rejects it.
type SessionHolder interface {
	Token() string
	Invalidate(ctx context.Context)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt. Used where the caller already confirmed.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
