package app

import (
	"context"
	"sync"

	"github.com/jsamuelsen/quotedash/internal/domain"
)

// FormState is the position of the quote form.
type FormState string

const (
	FormIdle       FormState = "idle"
	FormEditing    FormState = "editing"
	FormSubmitting FormState = "submitting"
)

// Form errors.
var (
	ErrFormClosed = &domain.ValidationError{Field: "form", Message: "no quote form is open"}
	ErrFormBusy   = &domain.ValidationError{Field: "form", Message: "the quote form is being submitted"}
)

// FormView is a copy of the form state.
type FormView struct {
	State FormState
	// QuoteID is empty when creating.
	QuoteID string
	Input   domain.QuoteInput
	Err     error
}

// QuoteForm is the create/edit form:
//
//	Idle -> Editing(id|"") -> Submitting -> Idle | Editing(err)
type QuoteForm struct {
	mu    sync.Mutex
	orch  *Orchestrator
	state FormState
	id    string
	input domain.QuoteInput
	err   error
}

// NewQuoteForm creates an idle form.
func NewQuoteForm(orch *Orchestrator) *QuoteForm {
	return &QuoteForm{orch: orch, state: FormIdle}
}

// OpenNew starts a blank create form.
func (f *QuoteForm) OpenNew() error {
	return f.open("", domain.QuoteInput{})
}

// OpenEdit starts an edit form pre-filled from q.
func (f *QuoteForm) OpenEdit(q domain.Quote) error {
	return f.open(q.ID, domain.InputFromQuote(q))
}

func (f *QuoteForm) open(id string, input domain.QuoteInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FormSubmitting {
		return ErrFormBusy
	}

	f.state = FormEditing
	f.id = id
	f.input = input
	f.err = nil

	return nil
}

// SetInput replaces the pending input.
func (f *QuoteForm) SetInput(input domain.QuoteInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case FormIdle:
		return ErrFormClosed
	case FormSubmitting:
		return ErrFormBusy
	}

	f.input = input

	return nil
}

// CreateCategory creates a category and, when the form is being edited,
// pre-selects it on the pending input.
func (f *QuoteForm) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	c, err := f.orch.CreateCategory(ctx, name)
	if err != nil {
		return domain.Category{}, err
	}

	f.mu.Lock()
	if f.state == FormEditing {
		f.input.CategoryID = c.ID
	}
	f.mu.Unlock()

	return c, nil
}

// Submit creates or updates the quote. On success the form closes; on
// failure it stays open with the error, unless the session is gone.
func (f *QuoteForm) Submit(ctx context.Context) (domain.Quote, error) {
	f.mu.Lock()

	switch f.state {
	case FormIdle:
		f.mu.Unlock()
		return domain.Quote{}, ErrFormClosed
	case FormSubmitting:
		f.mu.Unlock()
		return domain.Quote{}, ErrFormBusy
	}

	f.state = FormSubmitting
	id, input := f.id, f.input
	f.mu.Unlock()

	var (
		q   domain.Quote
		err error
	)

	if id == "" {
		q, err = f.orch.Create(ctx, input)
	} else {
		q, err = f.orch.Update(ctx, id, input)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case err == nil, domain.IsUnauthorized(err):
		f.reset()
	default:
		f.state = FormEditing
		f.err = err
	}

	return q, err
}

// Cancel closes the form and drops the pending input.
func (f *QuoteForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reset()
}

func (f *QuoteForm) reset() {
	f.state = FormIdle
	f.id = ""
	f.input = domain.QuoteInput{}
	f.err = nil
}

// View returns a copy of the form state.
func (f *QuoteForm) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	in := f.input
	in.TagIDs = append([]string(nil), f.input.TagIDs...)

	return FormView{State: f.state, QuoteID: f.id, Input: in, Err: f.err}
}
