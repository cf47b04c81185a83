// Package session owns the signed-in identity: it restores it from durable
// storage once per process, replaces it on login and clears it on logout.
package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/log"
	"github.com/felixgeelhaar/uniattend/internal/storage"
)

// Persisted keys. accessToken is only ever cleared; older clients stored
// the token under it.
const (
	KeyUserID      = "userId"
	KeyUser        = "user"
	KeyAccessToken = "accessToken"
)

var allKeys = []string{KeyUserID, KeyUser, KeyAccessToken}

// Store holds the current Session and keeps the durable copy in step
// with it.
type Store struct {
	storage storage.Store
	catalog domain.RoleCatalog
	logger  *log.Logger
	now     func() time.Time

	once       sync.Once
	hydrateErr error

	mu      sync.RWMutex
	loading bool
	current *Session
}

// Option configures a Store.
type Option func(*Store)

// WithRoleCatalog sets the catalog used to name role id references.
func WithRoleCatalog(c domain.RoleCatalog) Option {
	return func(s *Store) { s.catalog = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over st. It reports Loading until Hydrate ran.
func NewStore(st storage.Store, opts ...Option) *Store {
	s := &Store{
		storage: st,
		catalog: domain.DefaultRoleCatalog(),
		logger:  log.Nop(),
		now:     time.Now,
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate restores the persisted session. Only the first call does any
// work. Malformed or expired records are purged and end logged out without
// an error; only storage failures are returned.
func (s *Store) Hydrate(ctx context.Context) error {
	s.once.Do(func() {
		sess, err := s.restore(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.current = sess
		s.loading = false
		s.hydrateErr = err
	})
	return s.hydrateErr
}

func (s *Store) restore(ctx context.Context) (*Session, error) {
	userID, hasID, err := s.storage.Get(ctx, KeyUserID)
	if err != nil {
		return nil, s.purgeOnCorrupt(ctx, err)
	}
	raw, hasUser, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		return nil, s.purgeOnCorrupt(ctx, err)
	}

	if !hasID && !hasUser {
		return nil, nil
	}
	if !hasID || !hasUser {
		s.purge(ctx, "incomplete session record")
		return nil, nil
	}

	var p Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.purge(ctx, "session record is not valid JSON")
		return nil, nil
	}
	sess, err := Normalize(p, s.catalog)
	if err != nil {
		s.purge(ctx, err.Error())
		return nil, nil
	}
	if sess.SubjectID != domain.ID(userID) {
		s.purge(ctx, "userId does not match the session record")
		return nil, nil
	}
	if exp, ok := TokenExpiry(sess.AccessToken); ok && !exp.After(s.now()) {
		s.purge(ctx, "access token expired")
		return nil, nil
	}

	s.logger.DebugContext(ctx, "session restored", "user_id", sess.SubjectID.String(), "roles", sess.Roles.Names())
	return sess, nil
}

func (s *Store) purgeOnCorrupt(ctx context.Context, err error) error {
	if stderrors.Is(err, storage.ErrCorrupt) {
		s.purge(ctx, err.Error())
		return nil
	}
	return errors.NewStorageError("read", err)
}

func (s *Store) purge(ctx context.Context, reason string) {
	s.logger.DebugContext(ctx, "discarding persisted session", "reason", reason)
	if err := s.storage.Delete(ctx, allKeys...); err != nil {
		s.logger.WarnContext(ctx, "failed to purge persisted session", "error", err.Error())
	}
}

// Loading reports whether Hydrate has not finished yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Login normalizes p, persists it and makes it the current session. A
// principal without access token or id is rejected and nothing changes.
func (s *Store) Login(ctx context.Context, p Principal) (*Session, error) {
	sess, err := Normalize(p, s.catalog)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionInvalid, "encode session", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SetMany(ctx, map[string]string{
		KeyUserID: sess.SubjectID.String(),
		KeyUser:   string(data),
	}); err != nil {
		return nil, errors.NewStorageError("write", err)
	}

	s.current = sess
	s.loading = false
	s.logger.InfoContext(ctx, "signed in", "user_id", sess.SubjectID.String(), "roles", sess.Roles.Names())
	return sess.clone(), nil
}

// Logout clears the session in storage and in memory. It is safe to call
// when already logged out. Memory is cleared even when storage fails; the
// stored record then survives until the next successful Logout or a
// Hydrate that finds it expired.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasLoggedIn := s.current != nil
	err := s.storage.Delete(ctx, allKeys...)
	s.current = nil
	s.loading = false

	if err != nil {
		s.logger.WithError(err).WarnContext(ctx, "signed out in memory but the stored session was kept",
			"hint", "run 'uniattend logout' again")
		return errors.NewStorageError("clear", err).
			WithSuggestion("Run 'uniattend logout' again to remove the stored session")
	}
	if wasLoggedIn {
		s.logger.InfoContext(ctx, "signed out")
	}
	return nil
}

// Current returns a copy of the session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// AccessToken returns the bearer credential, or "" when logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}

// HasRole reports whether the current principal holds name, ignoring
// case. It is false when logged out.
func (s *Store) HasRole(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.HasRole(name)
}

// Require returns the session if it holds at least one of roles (any
// session when roles is empty).
func (s *Store) Require(roles ...string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loading {
		return nil, errors.New(errors.ErrCodeSessionLoading, "session is still loading")
	}
	if s.current == nil {
		return nil, errors.NewNotLoggedInError()
	}
	if len(roles) > 0 && !s.current.Roles.HasAny(roles...) {
		return nil, errors.NewForbiddenError(roles...)
	}
	return s.current.clone(), nil
}
