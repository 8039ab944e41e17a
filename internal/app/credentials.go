package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// Credentials is the single owner of the dashboard session. Consumers read
// copies through Token and Current; only Set, Clear and Invalidate change it.
type Credentials struct {
	mu      sync.RWMutex
	session *domain.Session

	store  ports.CredentialStore
	logger *slog.Logger

	hooksMu sync.Mutex
	hooks   []func(ctx context.Context)
}

var _ ports.SessionHolder = (*Credentials)(nil)

// NewCredentials creates an empty holder backed by store.
func NewCredentials(store ports.CredentialStore, logger *slog.Logger) *Credentials {
	if logger == nil {
		logger = slog.Default()
	}

	return &Credentials{
		store:  store,
		logger: logger.With(slog.String("component", "app.Credentials")),
	}
}

// Restore loads a persisted session, if any. No stored session is not an error.
func (c *Credentials) Restore(ctx context.Context) error {
	s, err := c.store.Load(ctx)
	if domain.IsNotFound(err) {
		return nil
	}

	if err != nil {
		return err
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "session restored", slog.String("user_id", s.User.ID))

	return nil
}

// Token returns the bearer token, or "" when signed out.
func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil {
		return ""
	}

	return c.session.Token
}

// Current returns a copy of the session.
func (c *Credentials) Current() (domain.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.session.Valid() {
		return domain.Session{}, false
	}

	return *c.session, true
}

// Set persists and activates a new session. A session without a token is
// rejected and nothing is stored.
func (c *Credentials) Set(ctx context.Context, s domain.Session) error {
	if !s.Valid() {
		return domain.NewValidationError("token", "token is required")
	}

	if err := c.store.Save(ctx, s); err != nil {
		return err
	}

	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()

	return nil
}

// Clear ends the session on logout.
func (c *Credentials) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	return c.store.Clear(ctx)
}

// Invalidate ends the session after the remote rejected the token.
// Registered hooks run afterwards.
func (c *Credentials) Invalidate(ctx context.Context) {
	if err := c.Clear(ctx); err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "clearing stored session failed", slog.Any("error", err))
	}

	c.hooksMu.Lock()
	hooks := append([]func(context.Context){}, c.hooks...)
	c.hooksMu.Unlock()

	for _, fn := range hooks {
		fn(ctx)
	}
}

// OnInvalidate registers fn to run whenever the remote rejects the session.
func (c *Credentials) OnInvalidate(fn func(ctx context.Context)) {
	c.hooksMu.Lock()
	c.hooks = append(c.hooks, fn)
	c.hooksMu.Unlock()
}
