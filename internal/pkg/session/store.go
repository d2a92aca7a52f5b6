// Package session keeps authenticated users in a server side store keyed by
// a random id carried in an HttpOnly cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// ErrNoSession is returned when a request carries no valid session
var ErrNoSession = errors.New("no session")

// Options configures the session cookie and lifetime
type Options struct {
	Prefix     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Store creates, loads and destroys user sessions
type Store struct {
	kv   KeyValueStore
	opts Options
}

// NewStore creates a Store on top of kv
func NewStore(kv KeyValueStore, opts Options) *Store {
	if opts.CookieName == "" {
		opts.CookieName = "planner.sid"
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7 * 24 * time.Hour
	}
	return &Store{kv: kv, opts: opts}
}

func (s *Store) key(id string) string {
	return s.opts.Prefix + "sess:" + id
}

// CookieName returns the name of the session cookie
func (s *Store) CookieName() string {
	return s.opts.CookieName
}

// Create stores user under a new session id and sets the session cookie.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, user *models.User) (string, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}

	id := uuid.NewString()
	if err := s.kv.Set(ctx, s.key(id), payload, s.opts.MaxAge); err != nil {
		logger.Error().Err(err).Str("eppn", user.EPPN).Msg("Error storing session")
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.setCookie(w, id, int(s.opts.MaxAge.Seconds()))

	logger.Info().Str("eppn", user.EPPN).Msg("Session created")
	return id, nil
}

// Load returns the user of the request's session and extends its lifetime.
func (s *Store) Load(ctx context.Context, r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(s.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil, ErrNoSession
	}

	key := s.key(cookie.Value)
	payload, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrNoSession
		}
		logger.Error().Err(err).Msg("Error loading session")
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	user := &models.User{}
	if err := json.Unmarshal(payload, user); err != nil {
		logger.Warn().Err(err).Msg("Discarding unreadable session")
		_ = s.kv.Del(ctx, key)
		return nil, ErrNoSession
	}

	if err := s.kv.Expire(ctx, key, s.opts.MaxAge); err != nil {
		logger.Warn().Err(err).Msg("Failed to extend session lifetime")
	}
	return user, nil
}

// Destroy deletes the request's session and expires the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(s.opts.CookieName); err == nil && cookie.Value != "" {
		if err := s.kv.Del(ctx, s.key(cookie.Value)); err != nil {
			logger.Error().Err(err).Msg("Error deleting session")
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	s.setCookie(w, "", -1)
	return nil
}

// Refresh re-issues the session cookie of r with a full lifetime so the
// browser keeps it as long as the stored session lives.
func (s *Store) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(s.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return
	}
	s.setCookie(w, cookie.Value, int(s.opts.MaxAge.Seconds()))
}

func (s *Store) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// DevUser is the account signed in by the development login
func DevUser(adminGroup string) *models.User {
	return &models.User{
		EPPN:      "dev@harvard.edu",
		FirstName: "Dev",
		LastName:  "User",
		Email:     "dev@seas.harvard.edu",
		Groups:    []string{adminGroup},
	}
}
