// Package session holds the per-browser authentication state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/kvstore"
	"recruitadmin/internal/notify"
	"recruitadmin/internal/utils"
)

// Durable storage keys.
const (
	KeyToken = "accessToken"
	KeyUser  = "user"
)

const (
	MsgLoggedIn  = "Logged in successfully"
	MsgLoggedOut = "Logged out successfully"
)

var (
	ErrNoSession = errors.New("session: login payload requires a token and a user")
	ErrNoProfile = errors.New("session: profile is required")
)

// State is a snapshot of the session.
type State struct {
	Authenticated bool
	User          *models.UserProfile
	Loading       bool
	// Expired is set when the session ended because its token ran out, until the
	// login page has shown the notice or a new login happened.
	Expired bool
}

// Store tracks authentication for one browser session. Loading flips to false exactly once,
// after Initialize has read the durable store.
type Store struct {
	kv     kvstore.Store
	toasts *notify.Queue
	now    func() time.Time

	mu    sync.RWMutex
	state State

	once  sync.Once
	ready chan struct{}
}

func NewStore(kv kvstore.Store, toasts *notify.Queue) *Store {
	return &Store{
		kv:     kv,
		toasts: toasts,
		now:    time.Now,
		state:  State{Loading: true},
		ready:  make(chan struct{}),
	}
}

// Initialize starts the single asynchronous read of the durable store. Later calls do nothing.
func (s *Store) Initialize(ctx context.Context) {
	s.once.Do(func() {
		go s.load(context.WithoutCancel(ctx))
	})
}

func (s *Store) load(ctx context.Context) {
	defer close(s.ready)

	next := State{}
	token, ok, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		utils.LogError("", "session", "load", err)
	}
	switch {
	case !ok || token == "":
	case utils.TokenExpired(token, s.now()):
		if err := s.kv.Delete(ctx, KeyToken, KeyUser); err != nil {
			utils.LogError("", "session", "clear_expired", err)
		}
		next.Expired = true
	default:
		next.Authenticated = true
		next.User = s.readProfile(ctx)
	}

	s.mu.Lock()
	// a Login that raced ahead of the read wins
	if s.state.Authenticated {
		next = s.state
	}
	next.Loading = false
	s.state = next
	s.mu.Unlock()
}

func (s *Store) readProfile(ctx context.Context) *models.UserProfile {
	raw, ok, err := s.kv.Get(ctx, KeyUser)
	if err != nil || !ok || raw == "" {
		return nil
	}
	var p models.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		utils.LogError("", "session", "decode_profile", err)
		return nil
	}
	return &p
}

// Ready is closed once the initial read completed.
func (s *Store) Ready() <-chan struct{} { return s.ready }

// State returns a copy; the profile is copied too.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if out.User != nil {
		u := *out.User
		u.Roles = append([]string(nil), out.User.Roles...)
		out.User = &u
	}
	return out
}

func (s *Store) Login(ctx context.Context, resp *models.LoginResponse) error {
	if resp == nil || resp.AccessToken == "" || resp.User == nil {
		return ErrNoSession
	}
	raw, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyToken, resp.AccessToken); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyUser, string(raw)); err != nil {
		return err
	}
	u := *resp.User
	s.mu.Lock()
	s.state.Authenticated = true
	s.state.Expired = false
	s.state.User = &u
	s.mu.Unlock()

	s.toasts.Info(MsgLoggedIn)
	return nil
}

// UpdateProfile replaces and persists the profile without touching authentication.
func (s *Store) UpdateProfile(ctx context.Context, p *models.UserProfile) error {
	if p == nil {
		return ErrNoProfile
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyUser, string(raw)); err != nil {
		return err
	}
	u := *p
	s.mu.Lock()
	s.state.User = &u
	s.mu.Unlock()
	return nil
}

// Logout clears the durable store and resets the state. Calling it twice is harmless.
func (s *Store) Logout(ctx context.Context) error {
	err := s.clear(ctx, false)
	s.toasts.Info(MsgLoggedOut)
	return err
}

// Expire is Logout without the notification; used when the token ran out mid-request.
func (s *Store) Expire(ctx context.Context) error {
	return s.clear(ctx, true)
}

// AckExpired clears the Expired flag once the notice was shown.
func (s *Store) AckExpired() {
	s.mu.Lock()
	s.state.Expired = false
	s.mu.Unlock()
}

func (s *Store) clear(ctx context.Context, expired bool) error {
	err := s.kv.Delete(ctx, KeyToken, KeyUser)
	s.mu.Lock()
	s.state.Authenticated = false
	s.state.User = nil
	s.state.Expired = expired
	s.mu.Unlock()
	return err
}

// Token returns the stored bearer token, empty when signed out.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, ok, err := s.kv.Get(ctx, KeyToken)
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}
