package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/mocks"
)

func newForm(t *testing.T) (*QuoteForm, *mocks.MockRemoteAPI, *Store) {
	t.Helper()

	orch, api, store := newOrchestrator(t)

	return NewQuoteForm(orch), api, store
}

func TestQuoteForm_ClosedRejectsInput(t *testing.T) {
	form, _, _ := newForm(t)

	assert.ErrorIs(t, form.SetInput(domain.QuoteInput{Content: "x"}), ErrFormClosed)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFormClosed)
	assert.Equal(t, FormIdle, form.View().State)
}

func TestQuoteForm_CreateClosesOnSuccess(t *testing.T) {
	form, api, store := newForm(t)
	created := quote("5", 0, "Know thyself")
	api.EXPECT().CreateQuote(mock.Anything, mock.Anything).Return(&created, nil)

	require.NoError(t, form.OpenNew())
	require.NoError(t, form.SetInput(domain.QuoteInput{Content: "Know thyself", Author: "Socrates"}))

	q, err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "5", q.ID)
	assert.Equal(t, FormView{State: FormIdle}, form.View())
	assert.Equal(t, 1, store.Quotes.Len())
}

func TestQuoteForm_FailureKeepsInput(t *testing.T) {
	form, api, _ := newForm(t)
	api.EXPECT().UpdateQuote(mock.Anything, "1", mock.Anything).
		Return(nil, domain.NewValidationErrors("invalid", []string{"content too long"}, nil))

	require.NoError(t, form.OpenEdit(quote("1", 0, "old")))
	require.NoError(t, form.SetInput(domain.QuoteInput{Content: "new", Author: "anon"}))

	_, err := form.Submit(context.Background())

	require.Error(t, err)

	view := form.View()
	assert.Equal(t, FormEditing, view.State)
	assert.Equal(t, "1", view.QuoteID)
	assert.Equal(t, "new", view.Input.Content)
	assert.Equal(t, "Validation error: content too long", Describe("save quote", view.Err))
}

func TestQuoteForm_LocalValidationKeepsForm(t *testing.T) {
	form, _, _ := newForm(t)

	require.NoError(t, form.OpenNew())

	_, err := form.Submit(context.Background())

	assert.Equal(t, "Quote content is required", Describe("create quote", err))
	assert.Equal(t, FormEditing, form.View().State)
}

func TestQuoteForm_UnauthorizedCloses(t *testing.T) {
	form, api, _ := newForm(t)
	api.EXPECT().CreateQuote(mock.Anything, mock.Anything).Return(nil, unauthorized())

	require.NoError(t, form.OpenNew())
	require.NoError(t, form.SetInput(domain.QuoteInput{Content: "c", Author: "a"}))

	_, err := form.Submit(context.Background())

	require.True(t, domain.IsUnauthorized(err))
	assert.Equal(t, FormIdle, form.View().State)
}

func TestQuoteForm_CreateCategoryPreselects(t *testing.T) {
	form, api, store := newForm(t)
	api.EXPECT().CreateCategory(mock.Anything, "Stoicism").Return(&domain.Category{ID: "c7", Name: "Stoicism"}, nil)

	require.NoError(t, form.OpenNew())

	c, err := form.CreateCategory(context.Background(), "Stoicism")

	require.NoError(t, err)
	assert.Equal(t, "c7", c.ID)
	assert.Equal(t, "c7", form.View().Input.CategoryID)
	assert.Equal(t, 1, store.Categories.Len())
}

func TestQuoteForm_CancelDropsInput(t *testing.T) {
	form, _, _ := newForm(t)

	require.NoError(t, form.OpenEdit(quote("1", 0, "a")))
	form.Cancel()

	assert.Equal(t, FormView{State: FormIdle}, form.View())
}
