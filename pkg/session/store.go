package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/ecommerce_hub/pkg/apiclient"
	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
	"github.com/Skotchmaster/ecommerce_hub/pkg/validation"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*apiclient.LoginResponse, error)
}

// record is the persisted slot: the identity fields plus an optional token.
type record struct {
	models.Identity
	AccessToken string `json:"accessToken,omitempty"`
}

// Store holds the single authenticated identity of this client. Every
// mutation is written to Storage before it becomes visible in memory.
type Store struct {
	storage  Storage
	auth     Authenticator
	validate *validator.Validate

	restoreOnce sync.Once

	mu      sync.RWMutex
	current *record
	loading bool
}

func New(storage Storage, auth Authenticator) *Store {
	return &Store{storage: storage, auth: auth, validate: validation.New(), loading: true}
}

// Restore loads the persisted session. Missing, unreadable or malformed data
// leaves the store logged out and clears the slot. Only the first call does work.
func (s *Store) Restore(ctx context.Context) {
	s.restoreOnce.Do(func() {
		rec := s.load(ctx)

		s.mu.Lock()
		if s.current == nil {
			s.current = rec
		}
		s.loading = false
		s.mu.Unlock()
	})
}

func (s *Store) load(ctx context.Context) *record {
	l := logging.FromContext(ctx).With("component", "session.restore")

	data, err := s.storage.Load(ctx)
	if errors.Is(err, ErrEmpty) {
		return nil
	}
	if err != nil {
		l.Warn("session_restore_failed", "reason", "cannot read storage", "error", err)
		s.discard(ctx)
		return nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		l.Warn("session_restore_failed", "reason", "malformed session", "error", err)
		s.discard(ctx)
		return nil
	}
	if err := s.validate.Struct(rec.Identity); err != nil {
		l.Warn("session_restore_failed", "reason", validation.Describe(err))
		s.discard(ctx)
		return nil
	}

	l.Info("session_restored", "user_id", rec.ID, "role", rec.Role)
	return &rec
}

func (s *Store) discard(ctx context.Context) {
	if err := s.storage.Clear(ctx); err != nil {
		logging.FromContext(ctx).Warn("session_clear_failed", "error", err)
	}
}

// Login authenticates against the gateway and, on success, replaces the
// current session. On failure the previous session is kept.
func (s *Store) Login(ctx context.Context, email, password string) (models.Identity, error) {
	l := logging.FromContext(ctx).With("component", "session.login")

	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		l.Warn("login_failed", "kind", apiclient.KindOf(err).String(), "error", err)
		return models.Identity{}, err
	}

	id := res.Identity
	if res.User != nil {
		id = *res.User
	}
	if err := s.validate.Struct(id); err != nil {
		reason := validation.Describe(err)
		l.Warn("login_failed", "reason", reason)
		return models.Identity{}, &apiclient.Error{
			Op:      "login",
			Kind:    apiclient.KindInvalidResponse,
			Message: "malformed login response: " + reason,
		}
	}

	rec := &record{Identity: id, AccessToken: res.AccessToken}
	data, err := json.Marshal(rec)
	if err != nil {
		return models.Identity{}, fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Save(ctx, data); err != nil {
		l.Error("login_failed", "reason", "cannot persist session", "error", err)
		return models.Identity{}, fmt.Errorf("persist session: %w", err)
	}
	s.current = rec
	s.loading = false

	l.Info("login_successful", "user_id", id.ID, "role", id.Role)
	return id, nil
}

// Logout clears the session locally. It never calls the gateway. The in-memory
// session is dropped even when the storage slot cannot be cleared.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.storage.Clear(ctx); err != nil {
		logging.FromContext(ctx).Warn("logout_clear_failed", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Current() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Identity{}, false
	}
	return s.current.Identity, true
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// AccessToken implements apiclient.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}
