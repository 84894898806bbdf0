package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"storefront-cart/internal/cart"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one shopper's visit. Its cart lives as long as the session.
type Session struct {
	ID        string
	Cart      *cart.Store
	CreatedAt time.Time
}

// Service keeps the open sessions. Sessions expire after ttl and the oldest
// one is evicted once maxSessions are open.
type Service struct {
	sessions *expirable.LRU[string, *Session]
	ttl      time.Duration
	logger   zerolog.Logger
}

func New(maxSessions int, ttl time.Duration, logger zerolog.Logger) *Service {
	s := &Service{ttl: ttl, logger: logger}
	s.sessions = expirable.NewLRU[string, *Session](maxSessions, s.onEvict, ttl)
	return s
}

func (s *Service) Open(_ context.Context) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:        id.String(),
		Cart:      cart.New(),
		CreatedAt: time.Now().UTC(),
	}
	s.sessions.Add(sess.ID, sess)
	s.logger.Debug().Str("session_id", sess.ID).Msg("session: opened")
	return sess, nil
}

// Lookup returns the cart of an open session and refreshes its expiry.
func (s *Service) Lookup(_ context.Context, id string) (*cart.Store, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	// expirable.LRU only refreshes the TTL on Add.
	s.sessions.Add(id, sess)
	return sess.Cart, nil
}

func (s *Service) End(_ context.Context, id string) error {
	if !s.sessions.Remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

func (s *Service) Len() int {
	return s.sessions.Len()
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}

func (s *Service) onEvict(id string, sess *Session) {
	s.logger.Debug().Str("session_id", id).Int("items", sess.Cart.Len()).Msg("session: discarded")
}
