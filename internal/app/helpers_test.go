package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory ports.CredentialStore.
type memStore struct {
	mu      sync.Mutex
	session *domain.Session
}

func (m *memStore) Save(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = &s

	return nil
}

func (m *memStore) Load(context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, domain.NewNotFoundError("session", "")
	}

	s := *m.session

	return &s, nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil

	return nil
}

func (m *memStore) stored() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session
}

type fixture struct {
	api   *mocks.MockRemoteAPI
	store *memStore
	creds *Credentials
	dash  *Dashboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	api := mocks.NewMockRemoteAPI(t)
	store := &memStore{}
	creds := NewCredentials(store, discardLogger())

	return &fixture{
		api:   api,
		store: store,
		creds: creds,
		dash:  NewDashboard(api, creds, DashboardConfig{Logger: discardLogger()}),
	}
}

func (f *fixture) signIn(t *testing.T, role string) {
	t.Helper()

	require.NoError(t, f.creds.Set(context.Background(), domain.Session{
		Token: "tok",
		User:  domain.User{ID: "1", Name: "Ada", Role: role},
	}))
}

func quote(id string, likes int, content string) domain.Quote {
	return domain.Quote{ID: id, Content: content, Author: "anon", LikesCount: likes, Tags: []domain.Tag{}}
}

func ids(quotes []domain.Quote) []string {
	out := make([]string, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.ID)
	}

	return out
}

func unauthorized() error {
	return &domain.UnauthorizedError{Operation: "test", Status: 401}
}

func confirmWith(answer bool) confirmRecorder {
	return confirmRecorder{answer: answer, asked: new(int)}
}

// confirmRecorder answers prompts with a fixed value and counts them.
type confirmRecorder struct {
	answer bool
	asked  *int
}

func (c confirmRecorder) Confirm(context.Context, string) bool {
	*c.asked++
	return c.answer
}
