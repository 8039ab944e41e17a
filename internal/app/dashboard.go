// Package app is the session-bound data store behind the dashboard. It
// coordinates the credential holder, the remote API, the collection mirrors,
// the derived views and the mutation orchestrator.
//
// Surfaces (HTTP handlers, the terminal client) call Dashboard only. Every
// method that needs a session returns domain.ErrUnauthorized before any
// remote call when none is held; each surface turns that into its own
// "log in again" outcome.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// DashboardConfig tunes the dashboard views.
type DashboardConfig struct {
	PopularLimit int
	LongestLimit int

	// LoadTimeout bounds the initial load. Zero means no extra bound.
	LoadTimeout time.Duration

	Logger *slog.Logger
}

// DashboardView is what the dashboard renders after a load.
type DashboardView struct {
	User    domain.User
	Landing string
	Loading bool
	Snapshot
}

// Catalog is the admin view of tags and categories.
type Catalog struct {
	Tags       []domain.Tag
	Categories []domain.Category
}

// Dashboard composes the session-bound data store.
type Dashboard struct {
	api    ports.RemoteAPI
	creds  *Credentials
	store  *Store
	views  *DerivedViews
	orch   *Orchestrator
	form   *QuoteForm
	cfg    DashboardConfig
	logger *slog.Logger

	loadMu  sync.Mutex
	loading atomic.Bool
}

// NewDashboard wires the dashboard. A session rejected by the remote also
// empties the cached collections and closes the form.
func NewDashboard(api ports.RemoteAPI, creds *Credentials, cfg DashboardConfig) *Dashboard {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.PopularLimit <= 0 {
		cfg.PopularLimit = DefaultViewLimit
	}

	if cfg.LongestLimit <= 0 {
		cfg.LongestLimit = DefaultViewLimit
	}

	store := NewStore()
	orch := NewOrchestrator(api, store, logger)

	d := &Dashboard{
		api:    api,
		creds:  creds,
		store:  store,
		views:  NewDerivedViews(api, store, logger),
		orch:   orch,
		form:   NewQuoteForm(orch),
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app.Dashboard")),
	}

	creds.OnInvalidate(func(ctx context.Context) {
		d.store.Reset()
		d.form.Cancel()
		logging.FromContext(ctx).InfoContext(ctx, "session invalidated, cached data dropped")
	})

	return d
}

// requireSession returns the session or domain.ErrUnauthorized.
func (d *Dashboard) requireSession(op string) (domain.Session, error) {
	s, ok := d.creds.Current()
	if !ok {
		return domain.Session{}, domain.NewUnauthorizedError(op, 0)
	}

	return s, nil
}

func (d *Dashboard) requireAdmin(op string) error {
	s, err := d.requireSession(op)
	if err != nil {
		return err
	}

	if !s.User.IsAdmin() {
		return domain.NewForbiddenError(op, "admin role required")
	}

	return nil
}

// --- session ---

// Login validates the form, signs in and stores the session. The returned
// string is the landing view.
func (d *Dashboard) Login(ctx context.Context, c domain.Credentials) (domain.Session, string, error) {
	if err := c.Validate(); err != nil {
		return domain.Session{}, "", err
	}

	s, err := d.api.Login(ctx, c)
	if err != nil {
		return domain.Session{}, "", err
	}

	return d.start(ctx, s)
}

// Register validates the form, creates the account and stores the session.
func (d *Dashboard) Register(ctx context.Context, r domain.Registration) (domain.Session, string, error) {
	if err := r.Validate(); err != nil {
		return domain.Session{}, "", err
	}

	s, err := d.api.Register(ctx, r)
	if err != nil {
		return domain.Session{}, "", err
	}

	return d.start(ctx, s)
}

func (d *Dashboard) start(ctx context.Context, s *domain.Session) (domain.Session, string, error) {
	if err := d.creds.Set(ctx, *s); err != nil {
		return domain.Session{}, "", err
	}

	d.store.Reset()
	d.form.Cancel()

	d.logger.InfoContext(ctx, "signed in", slog.String("user_id", s.User.ID), slog.String("role", s.User.Role))

	return *s, domain.LandingView(s), nil
}

// Logout clears the session and the cached data.
func (d *Dashboard) Logout(ctx context.Context) error {
	d.store.Reset()
	d.form.Cancel()

	return d.creds.Clear(ctx)
}

// Session returns the current session, if any.
func (d *Dashboard) Session() (domain.Session, bool) {
	return d.creds.Current()
}

// --- loading ---

type applyFunc func(*loadResult)

// Fetch order of Load.
const (
	loadQuotes = iota
	loadCategories
	loadTags
	loadFavorites
)

var loadNames = [...]string{loadQuotes: "quotes", loadCategories: "categories", loadTags: "tags", loadFavorites: "favorites"}

type loadResult struct {
	quotes     []domain.Quote
	favorites  []domain.Quote
	favErr     error
	categories []domain.Category
	tags       []domain.Tag
}

// Load fetches quotes, categories, tags and favorites concurrently and
// waits for all four. A failed collection loads as empty, a failed
// favorites fetch falls back to the quotes flagged IsFavorited, and a
// rejected session aborts without touching the cache.
func (d *Dashboard) Load(ctx context.Context) (DashboardView, error) {
	s, err := d.requireSession("Load")
	if err != nil {
		return DashboardView{}, err
	}

	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	d.loading.Store(true)
	defer d.loading.Store(false)

	ctx = logging.WithUserID(ctx, s.User.ID)

	if d.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.LoadTimeout)
		defer cancel()
	}

	results := ParallelPartial(ctx,
		func(ctx context.Context) (applyFunc, error) {
			quotes, err := d.api.ListQuotes(ctx)
			return func(r *loadResult) { r.quotes = quotes }, err
		},
		func(ctx context.Context) (applyFunc, error) {
			cats, err := d.api.ListCategories(ctx)
			return func(r *loadResult) { r.categories = cats }, err
		},
		func(ctx context.Context) (applyFunc, error) {
			tags, err := d.api.ListTags(ctx)
			return func(r *loadResult) { r.tags = tags }, err
		},
		func(ctx context.Context) (applyFunc, error) {
			favs, err := d.api.ListFavorites(ctx)
			return func(r *loadResult) { r.favorites = favs }, err
		},
	)

	if err := ctx.Err(); err != nil {
		return DashboardView{}, err
	}

	var lr loadResult

	for i, res := range results {
		switch {
		case res.Err == nil:
			res.Value(&lr)
		case domain.IsUnauthorized(res.Err):
			return DashboardView{}, res.Err
		case i == loadFavorites:
			lr.favErr = res.Err
		default:
			d.logger.WarnContext(ctx, "collection failed to load, showing it empty",
				slog.String("collection", loadNames[i]),
				slog.Any("error", res.Err),
			)
		}
	}

	if lr.favErr != nil {
		d.views.fallback(ctx, "favorites", lr.favErr)

		lr.favorites = nil
		for _, q := range lr.quotes {
			if q.IsFavorited {
				lr.favorites = append(lr.favorites, q)
			}
		}
	}

	d.store.Load(lr.quotes, lr.favorites, lr.categories, lr.tags)
	d.loading.Store(false)

	return d.view(s), nil
}

// Refresh reloads every collection.
func (d *Dashboard) Refresh(ctx context.Context) (DashboardView, error) {
	return d.Load(ctx)
}

// View returns the cached dashboard without loading.
func (d *Dashboard) View() (DashboardView, error) {
	s, err := d.requireSession("View")
	if err != nil {
		return DashboardView{}, err
	}

	return d.view(s), nil
}

func (d *Dashboard) view(s domain.Session) DashboardView {
	return DashboardView{
		User:     s.User,
		Landing:  domain.LandingView(&s),
		Loading:  d.loading.Load(),
		Snapshot: d.store.Snapshot(),
	}
}

// --- reads ---

// Quotes returns the cached quotes matching f.
func (d *Dashboard) Quotes(f domain.Filter) ([]domain.Quote, error) {
	if _, err := d.requireSession("Quotes"); err != nil {
		return nil, err
	}

	return d.views.Filtered(f), nil
}

// Favorites returns the cached favorites.
func (d *Dashboard) Favorites() ([]domain.Quote, error) {
	if _, err := d.requireSession("Favorites"); err != nil {
		return nil, err
	}

	return d.store.Favorites.Items(), nil
}

// Categories returns the cached categories.
func (d *Dashboard) Categories() ([]domain.Category, error) {
	if _, err := d.requireSession("Categories"); err != nil {
		return nil, err
	}

	return d.store.Categories.Items(), nil
}

// Tags returns the cached tags.
func (d *Dashboard) Tags() ([]domain.Tag, error) {
	if _, err := d.requireSession("Tags"); err != nil {
		return nil, err
	}

	return d.store.Tags.Items(), nil
}

// RandomQuote returns a random quote, remote first.
func (d *Dashboard) RandomQuote(ctx context.Context) (Result[domain.Quote], error) {
	if _, err := d.requireSession("RandomQuote"); err != nil {
		return Result[domain.Quote]{}, err
	}

	return d.views.RandomQuote(ctx)
}

// Popular returns the most liked quotes, remote first.
func (d *Dashboard) Popular(ctx context.Context) (Result[[]domain.Quote], error) {
	if _, err := d.requireSession("Popular"); err != nil {
		return Result[[]domain.Quote]{}, err
	}

	return d.views.TopByLikes(ctx, d.cfg.PopularLimit)
}

// Longest returns the longest cached quotes.
func (d *Dashboard) Longest() ([]domain.Quote, error) {
	if _, err := d.requireSession("Longest"); err != nil {
		return nil, err
	}

	return d.views.LongestByContentLength(d.cfg.LongestLimit), nil
}

// --- mutations ---

func (d *Dashboard) guard(op string) error {
	_, err := d.requireSession(op)
	return err
}

// CreateQuote creates a quote.
func (d *Dashboard) CreateQuote(ctx context.Context, in domain.QuoteInput) (domain.Quote, error) {
	if err := d.guard("CreateQuote"); err != nil {
		return domain.Quote{}, err
	}

	return d.orch.Create(ctx, in)
}

// UpdateQuote saves an edit.
func (d *Dashboard) UpdateQuote(ctx context.Context, id string, in domain.QuoteInput) (domain.Quote, error) {
	if err := d.guard("UpdateQuote"); err != nil {
		return domain.Quote{}, err
	}

	return d.orch.Update(ctx, id, in)
}

// DeleteQuote deletes a quote after confirm approves.
func (d *Dashboard) DeleteQuote(ctx context.Context, id string, confirm ports.Confirmer) error {
	if err := d.guard("DeleteQuote"); err != nil {
		return err
	}

	return d.orch.Delete(ctx, id, confirm)
}

// LikeQuote likes a quote.
func (d *Dashboard) LikeQuote(ctx context.Context, id string) error {
	if err := d.guard("LikeQuote"); err != nil {
		return err
	}

	return d.orch.Like(ctx, id)
}

// ToggleFavorite flips a quote's favorite flag.
func (d *Dashboard) ToggleFavorite(ctx context.Context, id string) (domain.Quote, error) {
	if err := d.guard("ToggleFavorite"); err != nil {
		return domain.Quote{}, err
	}

	return d.orch.Favorite(ctx, id)
}

// CreateCategory creates a category from the quote form side channel.
func (d *Dashboard) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	if err := d.guard("CreateCategory"); err != nil {
		return domain.Category{}, err
	}

	return d.form.CreateCategory(ctx, name)
}

// Form returns the quote form after checking the session.
func (d *Dashboard) Form() (*QuoteForm, error) {
	if err := d.guard("Form"); err != nil {
		return nil, err
	}

	return d.form, nil
}

// EditQuote opens the form on a cached quote.
func (d *Dashboard) EditQuote(id string) (FormView, error) {
	if err := d.guard("EditQuote"); err != nil {
		return FormView{}, err
	}

	q, ok := d.store.FindQuote(id)
	if !ok {
		return FormView{}, domain.NewNotFoundError("quote", id)
	}

	if err := d.form.OpenEdit(q); err != nil {
		return FormView{}, err
	}

	return d.form.View(), nil
}

// --- admin ---

// Catalog loads tags and categories concurrently and mirrors both.
func (d *Dashboard) Catalog(ctx context.Context) (Catalog, error) {
	if err := d.requireAdmin("Catalog"); err != nil {
		return Catalog{}, err
	}

	tags, cats, err := Parallel2(ctx,
		d.api.ListTags,
		d.api.ListCategories,
	)
	if err != nil {
		return Catalog{}, err
	}

	d.store.Tags.ReplaceAll(tags)
	d.store.Categories.ReplaceAll(cats)

	return Catalog{Tags: tags, Categories: cats}, nil
}

// refetch reloads the catalog after an admin save. A failed refetch keeps
// the locally applied result.
func (d *Dashboard) refetch(ctx context.Context) {
	if _, err := d.Catalog(ctx); err != nil && !errors.Is(err, context.Canceled) {
		d.logger.WarnContext(ctx, "catalog refetch failed", slog.Any("error", err))
	}
}

// SaveTag creates a tag when id is empty, else renames it.
func (d *Dashboard) SaveTag(ctx context.Context, id, name string) (domain.Tag, error) {
	if err := d.requireAdmin("SaveTag"); err != nil {
		return domain.Tag{}, err
	}

	var (
		t   domain.Tag
		err error
	)

	if id == "" {
		t, err = d.orch.CreateTag(ctx, name)
	} else {
		t, err = d.orch.UpdateTag(ctx, id, name)
	}

	if err != nil {
		return domain.Tag{}, err
	}

	d.refetch(ctx)

	return t, nil
}

// SaveCategory creates a category when id is empty, else renames it.
func (d *Dashboard) SaveCategory(ctx context.Context, id, name string) (domain.Category, error) {
	if err := d.requireAdmin("SaveCategory"); err != nil {
		return domain.Category{}, err
	}

	var (
		c   domain.Category
		err error
	)

	if id == "" {
		c, err = d.orch.CreateCategory(ctx, name)
	} else {
		c, err = d.orch.UpdateCategory(ctx, id, name)
	}

	if err != nil {
		return domain.Category{}, err
	}

	d.refetch(ctx)

	return c, nil
}

// DeleteTag deletes a tag after confirmation.
func (d *Dashboard) DeleteTag(ctx context.Context, id string, confirm ports.Confirmer) error {
	if err := d.requireAdmin("DeleteTag"); err != nil {
		return err
	}

	return d.orch.DeleteTag(ctx, id, confirm)
}

// DeleteCategory deletes a category after confirmation.
func (d *Dashboard) DeleteCategory(ctx context.Context, id string, confirm ports.Confirmer) error {
	if err := d.requireAdmin("DeleteCategory"); err != nil {
		return err
	}

	return d.orch.DeleteCategory(ctx, id, confirm)
}
