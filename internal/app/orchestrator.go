package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// Confirmation prompts.
const (
	PromptDeleteQuote    = "Are you sure you want to delete this quote?"
	PromptDeleteCategory = "Are you sure you want to delete this category?"
	PromptDeleteTag      = "Are you sure you want to delete this tag?"
)

var errEmptyResponse = errors.New("empty response")

// Orchestrator applies quote and catalog mutations: one remote call each,
// then the matching Store update. Nothing is applied when the call fails.
type Orchestrator struct {
	api    ports.RemoteAPI
	store  *Store
	exec   *Executor
	logger *slog.Logger
}

// NewOrchestrator creates the mutation orchestrator.
func NewOrchestrator(api ports.RemoteAPI, store *Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.Orchestrator"))

	return &Orchestrator{api: api, store: store, exec: NewExecutor(logger), logger: logger}
}

type quoteEdit struct {
	id    string
	input domain.QuoteInput
}

func validateEdit(_ context.Context, in quoteEdit) error {
	return in.input.Validate()
}

func verifyQuote(_ context.Context, _ quoteEdit, q *domain.Quote) error {
	if q == nil || q.ID == "" {
		return domain.NewContractError("quote", errEmptyResponse)
	}

	return nil
}

func respondQuote(_ context.Context, _ quoteEdit, q *domain.Quote) (domain.Quote, error) {
	return q.Clone(), nil
}

// Create validates input locally and creates the quote. The result is
// prepended to quotes and, if the server marks it favorited, to favorites.
func (o *Orchestrator) Create(ctx context.Context, input domain.QuoteInput) (domain.Quote, error) {
	return Execute(ctx, o.exec, Operation[quoteEdit, *domain.Quote, domain.Quote]{
		Name:     "CreateQuote",
		Validate: validateEdit,
		Perform: func(ctx context.Context, in quoteEdit) (*domain.Quote, error) {
			return o.api.CreateQuote(ctx, in.input)
		},
		Verify: verifyQuote,
		Archive: func(_ context.Context, _ quoteEdit, q *domain.Quote) error {
			o.store.ApplyQuote(*q)
			return nil
		},
		Respond: respondQuote,
	}, quoteEdit{input: input.Normalize()})
}

// Update validates input locally and saves it. Flags come from the server
// response, never from the cached copy.
func (o *Orchestrator) Update(ctx context.Context, id string, input domain.QuoteInput) (domain.Quote, error) {
	return Execute(ctx, o.exec, Operation[quoteEdit, *domain.Quote, domain.Quote]{
		Name: "UpdateQuote",
		Validate: func(ctx context.Context, in quoteEdit) error {
			if in.id == "" {
				return domain.NewValidationError("id", "quote id is required")
			}

			return validateEdit(ctx, in)
		},
		Perform: func(ctx context.Context, in quoteEdit) (*domain.Quote, error) {
			return o.api.UpdateQuote(ctx, in.id, in.input)
		},
		Verify: verifyQuote,
		Archive: func(_ context.Context, _ quoteEdit, q *domain.Quote) error {
			o.store.ApplyQuote(*q)
			return nil
		},
		Respond: respondQuote,
	}, quoteEdit{id: id, input: input.Normalize()})
}

// Delete asks confirm first. A declined prompt returns domain.ErrCanceled
// without any remote call.
func (o *Orchestrator) Delete(ctx context.Context, id string, confirm ports.Confirmer) error {
	_, err := Execute(ctx, o.exec, Operation[string, struct{}, struct{}]{
		Name:     "DeleteQuote",
		Validate: confirmed(confirm, PromptDeleteQuote),
		Perform: func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, o.api.DeleteQuote(ctx, id)
		},
		Archive: func(_ context.Context, id string, _ struct{}) error {
			o.store.RemoveQuote(id)
			return nil
		},
	}, id)

	return err
}

// Like records a like, then bumps the cached count. There is no unlike.
func (o *Orchestrator) Like(ctx context.Context, id string) error {
	_, err := Execute(ctx, o.exec, Operation[string, struct{}, struct{}]{
		Name:     "LikeQuote",
		Validate: requireID,
		Perform: func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, o.api.LikeQuote(ctx, id)
		},
		Archive: func(_ context.Context, id string, _ struct{}) error {
			o.store.LikeQuote(id)
			return nil
		},
	}, id)

	return err
}

// Favorite toggles the favorite flag. The client is authoritative: a failed
// toggle request is logged and the local toggle still applies, unless the
// session was rejected or the caller gave up.
func (o *Orchestrator) Favorite(ctx context.Context, id string) (domain.Quote, error) {
	var held, toggled domain.Quote

	return Execute(ctx, o.exec, Operation[string, struct{}, domain.Quote]{
		Name: "FavoriteQuote",
		Validate: func(_ context.Context, id string) error {
			q, ok := o.store.FindQuote(id)
			if !ok {
				return domain.NewNotFoundError("quote", id)
			}

			held = q

			return nil
		},
		Perform: func(ctx context.Context, id string) (struct{}, error) {
			err := o.api.FavoriteQuote(ctx, id)
			if err == nil || domain.IsUnauthorized(err) || ctx.Err() != nil {
				return struct{}{}, err
			}

			logging.FromContext(ctx).WarnContext(ctx, "favorite request failed, keeping local toggle",
				slog.String("quote_id", id),
				slog.Any("error", err),
			)

			return struct{}{}, nil
		},
		Archive: func(ctx context.Context, id string, _ struct{}) error {
			q, ok := o.store.ToggleFavorite(id)
			if !ok {
				// Dropped by a concurrent refresh after the toggle was sent.
				logging.FromContext(ctx).InfoContext(ctx, "favorited quote no longer cached",
					slog.String("quote_id", id),
				)

				q = held
				q.IsFavorited = !q.IsFavorited
			}

			toggled = q

			return nil
		},
		Respond: func(context.Context, string, struct{}) (domain.Quote, error) {
			return toggled, nil
		},
	}, id)
}

// CreateCategory trims and validates name, then appends the new category.
func (o *Orchestrator) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	return Execute(ctx, o.exec, Operation[string, *domain.Category, domain.Category]{
		Name:     "CreateCategory",
		Validate: requireName("Category name is required"),
		Perform:  o.api.CreateCategory,
		Verify:   verifyCategory,
		Archive: func(_ context.Context, _ string, c *domain.Category) error {
			o.store.Categories.Append(*c)
			return nil
		},
		Respond: func(_ context.Context, _ string, c *domain.Category) (domain.Category, error) {
			return *c, nil
		},
	}, strings.TrimSpace(name))
}

// UpdateCategory renames a category.
func (o *Orchestrator) UpdateCategory(ctx context.Context, id, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)

	return Execute(ctx, o.exec, Operation[string, *domain.Category, domain.Category]{
		Name:     "UpdateCategory",
		Validate: requireName("Category name is required"),
		Perform: func(ctx context.Context, name string) (*domain.Category, error) {
			return o.api.UpdateCategory(ctx, id, name)
		},
		Verify: verifyCategory,
		Archive: func(_ context.Context, _ string, c *domain.Category) error {
			o.store.Categories.Append(*c)
			return nil
		},
		Respond: func(_ context.Context, _ string, c *domain.Category) (domain.Category, error) {
			return *c, nil
		},
	}, name)
}

// DeleteCategory removes a category after confirmation.
func (o *Orchestrator) DeleteCategory(ctx context.Context, id string, confirm ports.Confirmer) error {
	_, err := Execute(ctx, o.exec, Operation[string, struct{}, struct{}]{
		Name:     "DeleteCategory",
		Validate: confirmed(confirm, PromptDeleteCategory),
		Perform: func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, o.api.DeleteCategory(ctx, id)
		},
		Archive: func(_ context.Context, id string, _ struct{}) error {
			o.store.Categories.Remove(id)
			return nil
		},
	}, id)

	return err
}

// CreateTag creates a tag.
func (o *Orchestrator) CreateTag(ctx context.Context, name string) (domain.Tag, error) {
	return o.saveTag(ctx, "CreateTag", "", name)
}

// UpdateTag renames a tag.
func (o *Orchestrator) UpdateTag(ctx context.Context, id, name string) (domain.Tag, error) {
	return o.saveTag(ctx, "UpdateTag", id, name)
}

func (o *Orchestrator) saveTag(ctx context.Context, op, id, name string) (domain.Tag, error) {
	return Execute(ctx, o.exec, Operation[string, *domain.Tag, domain.Tag]{
		Name:     op,
		Validate: requireName("Tag name is required"),
		Perform: func(ctx context.Context, name string) (*domain.Tag, error) {
			if id == "" {
				return o.api.CreateTag(ctx, name)
			}

			return o.api.UpdateTag(ctx, id, name)
		},
		Verify: func(_ context.Context, _ string, t *domain.Tag) error {
			if t == nil || t.ID == "" {
				return domain.NewContractError("tag", errEmptyResponse)
			}

			return nil
		},
		Archive: func(_ context.Context, _ string, t *domain.Tag) error {
			o.store.Tags.Append(*t)
			return nil
		},
		Respond: func(_ context.Context, _ string, t *domain.Tag) (domain.Tag, error) {
			return *t, nil
		},
	}, strings.TrimSpace(name))
}

// DeleteTag removes a tag after confirmation.
func (o *Orchestrator) DeleteTag(ctx context.Context, id string, confirm ports.Confirmer) error {
	_, err := Execute(ctx, o.exec, Operation[string, struct{}, struct{}]{
		Name:     "DeleteTag",
		Validate: confirmed(confirm, PromptDeleteTag),
		Perform: func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, o.api.DeleteTag(ctx, id)
		},
		Archive: func(_ context.Context, id string, _ struct{}) error {
			o.store.Tags.Remove(id)
			return nil
		},
	}, id)

	return err
}

func verifyCategory(_ context.Context, _ string, c *domain.Category) error {
	if c == nil || c.ID == "" {
		return domain.NewContractError("category", errEmptyResponse)
	}

	return nil
}

func requireID(_ context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id", "id is required")
	}

	return nil
}

func requireName(message string) func(context.Context, string) error {
	return func(_ context.Context, name string) error {
		if name == "" {
			return domain.NewValidationError("name", message)
		}

		return nil
	}
}

func confirmed(confirm ports.Confirmer, prompt string) func(context.Context, string) error {
	return func(ctx context.Context, id string) error {
		if err := requireID(ctx, id); err != nil {
			return err
		}

		if confirm == nil || !confirm.Confirm(ctx, prompt) {
			return domain.ErrCanceled
		}

		return nil
	}
}
