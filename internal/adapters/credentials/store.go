// Package credentials persists the dashboard session in an embedded badger
// database so a login survives process restarts.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/jsamuelsen/quotedash/internal/domain"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

var (
	keyToken = []byte("session/token")
	keyUser  = []byte("session/user")
)

// Options configures the store.
type Options struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	Logger   *slog.Logger
}

// Store implements ports.CredentialStore. Token and profile are always
// written and removed in the same transaction.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var (
	_ ports.CredentialStore = (*Store)(nil)
	_ ports.HealthChecker   = (*Store)(nil)
)

// Open opens (or creates) the credential database.
func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bopts := badger.DefaultOptions(opts.Path).WithLoggingLevel(badger.ERROR)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR)
	} else if opts.Path == "" {
		return nil, errors.New("credential store path is required")
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	return &Store{db: db, logger: logger.With(slog.String("component", "credentials.Store"))}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the token and profile atomically.
func (s *Store) Save(ctx context.Context, session domain.Session) error {
	if session.Token == "" {
		return domain.NewValidationError("token", "token is required")
	}

	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(keyToken, []byte(session.Token)); err != nil {
			return err
		}

		return txn.Set(keyUser, user)
	})
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.logger.DebugContext(ctx, "session saved", slog.String("user_id", session.User.ID))

	return nil
}

// Load returns the stored session. Token and profile are only valid
// together: a token without a profile is dropped and reported as absent,
// and so is a profile without a token.
func (s *Store) Load(ctx context.Context) (*domain.Session, error) {
	var (
		session     domain.Session
		missingUser bool
	)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyToken)
		if err != nil {
			return err
		}

		token, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		session.Token = string(token)

		item, err = txn.Get(keyUser)
		if errors.Is(err, badger.ErrKeyNotFound) {
			missingUser = true
			return nil
		}

		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session.User)
		})
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, domain.NewNotFoundError("session", "")
	case err != nil:
		return nil, fmt.Errorf("loading session: %w", err)
	case missingUser:
		s.logger.WarnContext(ctx, "stored token has no profile, discarding it")

		if err := s.Clear(ctx); err != nil {
			return nil, err
		}

		return nil, domain.NewNotFoundError("session", "")
	case session.Token == "":
		return nil, domain.NewNotFoundError("session", "")
	}

	return &session, nil
}

// Clear removes token and profile together. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{keyToken, keyUser} {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	s.logger.DebugContext(ctx, "session cleared")

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "credential-store"
}

// Check implements ports.HealthChecker.
func (s *Store) Check(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("credential store is closed")
	}

	return nil
}
