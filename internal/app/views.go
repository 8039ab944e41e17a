package app

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

const instrumentationName = "github.com/jsamuelsen/quotedash/internal/app"

// DefaultViewLimit is the size of the popular and longest rankings.
const DefaultViewLimit = 5

// Source tells where a derived view came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// View pairs a remote fetch with its local equivalent. Remote may be nil for
// views computed only from the cache.
type View[T any] struct {
	Name   string
	Remote func(ctx context.Context) (T, error)
	Local  func() (T, error)
}

// Result is a resolved view.
type Result[T any] struct {
	Value  T
	Source Source
}

// Resolve runs the remote fetch and falls back to the local computation on
// failure. A rejected session or a canceled context is returned as is:
// neither may be papered over with cached data.
func Resolve[T any](ctx context.Context, v View[T], onFallback func(ctx context.Context, name string, cause error)) (Result[T], error) {
	if v.Remote != nil {
		value, err := v.Remote(ctx)
		if err == nil {
			return Result[T]{Value: value, Source: SourceRemote}, nil
		}

		if domain.IsUnauthorized(err) || ctx.Err() != nil {
			return Result[T]{}, err
		}

		if onFallback != nil {
			onFallback(ctx, v.Name, err)
		}
	}

	value, err := v.Local()
	if err != nil {
		return Result[T]{}, err
	}

	return Result[T]{Value: value, Source: SourceLocal}, nil
}

// DerivedViews computes the secondary dashboard views from the quote cache.
type DerivedViews struct {
	api    ports.QuoteAPI
	store  *Store
	logger *slog.Logger

	// pick returns a uniform index in [0, n).
	pick      func(n int) int
	fallbacks metric.Int64Counter
}

// NewDerivedViews creates the view computer.
func NewDerivedViews(api ports.QuoteAPI, store *Store, logger *slog.Logger) *DerivedViews {
	if logger == nil {
		logger = slog.Default()
	}

	fallbacks, err := otel.Meter(instrumentationName).Int64Counter(
		"quotedash.fallback.total",
		metric.WithDescription("Derived views served from the local cache after a remote failure"),
	)
	if err != nil {
		logger.Warn("fallback counter unavailable", slog.Any("error", err))
	}

	return &DerivedViews{
		api:       api,
		store:     store,
		logger:    logger.With(slog.String("component", "app.DerivedViews")),
		pick:      rand.IntN,
		fallbacks: fallbacks,
	}
}

func (d *DerivedViews) fallback(ctx context.Context, name string, cause error) {
	logging.FromContext(ctx).WarnContext(ctx, "remote view failed, using local data",
		slog.String("view", name),
		slog.Any("error", cause),
	)

	if d.fallbacks != nil {
		d.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("view", name)))
	}
}

// RandomQuote prefers the remote pick and falls back to a uniform sample of
// the cached quotes. An empty cache yields domain.ErrNoQuotes.
func (d *DerivedViews) RandomQuote(ctx context.Context) (Result[domain.Quote], error) {
	return Resolve(ctx, View[domain.Quote]{
		Name: "random",
		Remote: func(ctx context.Context) (domain.Quote, error) {
			q, err := d.api.RandomQuote(ctx)
			if err != nil {
				return domain.Quote{}, err
			}

			return *q, nil
		},
		Local: func() (domain.Quote, error) {
			quotes := d.store.Quotes.Items()
			if len(quotes) == 0 {
				return domain.Quote{}, domain.ErrNoQuotes
			}

			return quotes[d.pick(len(quotes))], nil
		},
	}, d.fallback)
}

// TopByLikes prefers the remote popularity ranking and falls back to a
// stable local sort by likes.
func (d *DerivedViews) TopByLikes(ctx context.Context, n int) (Result[[]domain.Quote], error) {
	n = limitOrDefault(n)

	return Resolve(ctx, View[[]domain.Quote]{
		Name: "popular",
		Remote: func(ctx context.Context) ([]domain.Quote, error) {
			quotes, err := d.api.PopularQuotes(ctx)
			if err != nil {
				return nil, err
			}

			return head(quotes, n), nil
		},
		Local: func() ([]domain.Quote, error) {
			return SortByLikes(d.store.Quotes.Items(), n), nil
		},
	}, d.fallback)
}

// LongestByContentLength ranks the cached quotes by content length. There
// is no remote equivalent.
func (d *DerivedViews) LongestByContentLength(n int) []domain.Quote {
	res, _ := Resolve(context.Background(), View[[]domain.Quote]{
		Name: "longest",
		Local: func() ([]domain.Quote, error) {
			return SortByLength(d.store.Quotes.Items(), limitOrDefault(n)), nil
		},
	}, nil)

	return res.Value
}

// Filtered returns the cached quotes matching f.
func (d *DerivedViews) Filtered(f domain.Filter) []domain.Quote {
	return f.Apply(d.store.Quotes.Items())
}

// SortByLikes returns the n most liked quotes. Ties keep their order.
func SortByLikes(quotes []domain.Quote, n int) []domain.Quote {
	sorted := slices.Clone(quotes)
	slices.SortStableFunc(sorted, func(a, b domain.Quote) int {
		return b.LikesCount - a.LikesCount
	})

	return head(sorted, n)
}

// SortByLength returns the n longest quotes by character count. Ties keep
// their order.
func SortByLength(quotes []domain.Quote, n int) []domain.Quote {
	sorted := slices.Clone(quotes)
	slices.SortStableFunc(sorted, func(a, b domain.Quote) int {
		return utf8.RuneCountInString(b.Content) - utf8.RuneCountInString(a.Content)
	})

	return head(sorted, n)
}

func head[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		items = items[:n]
	}

	if items == nil {
		return []T{}
	}

	return items
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return DefaultViewLimit
	}

	return n
}

// isSoft reports errors a view shows as a message rather than a failure.
func isSoft(err error) bool {
	return errors.Is(err, domain.ErrNoQuotes)
}
