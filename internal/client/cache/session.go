package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
	"github.com/dmitrijs2005/quotekeeper/internal/common"
	"github.com/dmitrijs2005/quotekeeper/internal/logging"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Options configure the caches a Session hands out.
type Options struct {
	// TTL overrides the per-kind default freshness window.
	TTL    map[models.Kind]time.Duration
	Now    func() time.Time
	Logger logging.Logger
}

func (o Options) ttl(kind models.Kind) time.Duration {
	if d, ok := o.TTL[kind]; ok {
		return d
	}
	spec, _ := kind.Spec()
	return spec.TTL
}

// Session owns the list caches of one signed-in owner. Caches are created
// lazily and live until Close. A closed session has no identity.
type Session struct {
	opts Options

	mu       sync.Mutex
	identity models.Identity
	lists    map[models.Kind]*ListCache
	closed   bool
}

// NewSession starts a session for id.
func NewSession(id models.Identity, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	return &Session{
		opts:     opts,
		identity: id,
		lists:    make(map[models.Kind]*ListCache),
	}
}

// Identity returns the session owner.
func (s *Session) Identity() models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// SetAccessToken records a refreshed token for the same owner.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.identity.AccessToken = token
}

// List returns the cache for kind, creating it on first use. After Close it
// returns an empty cache that the session does not keep.
func (s *Session) List(kind models.Kind) *ListCache {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.lists[kind]; ok {
		return c
	}
	c := NewListCache(kind, s.opts.ttl(kind), s.opts.Now, s.opts.Logger.With("owner_id", s.identity.OwnerID))
	if !s.closed {
		s.lists[kind] = c
	}
	return c
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close signs the owner out of the session: the identity is dropped and
// every cache is cleared. Results of refreshes still in flight land in the
// cleared caches, which the session no longer hands out.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.identity = models.Identity{}
	lists := make([]*ListCache, 0, len(s.lists))
	for _, c := range s.lists {
		lists = append(lists, c)
	}
	s.lists = make(map[models.Kind]*ListCache)
	s.mu.Unlock()

	for _, c := range lists {
		c.Clear()
	}
}

// Registry keeps a bounded set of sessions keyed by owner id. Sessions that
// fall out of the registry are closed.
type Registry struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]
	opts     Options
}

// NewRegistry returns a registry holding at most size sessions.
func NewRegistry(size int, opts Options) (*Registry, error) {
	sessions, err := lru.NewWithEvict(size, func(_ string, s *Session) {
		s.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("session registry: %w", err)
	}
	return &Registry{sessions: sessions, opts: opts}, nil
}

// Session returns the session of id's owner, starting one if needed.
func (r *Registry) Session(id models.Identity) (*Session, error) {
	if !id.Authenticated() {
		return nil, common.ErrUnauthenticated
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions.Get(id.OwnerID); ok {
		if id.AccessToken != "" {
			s.SetAccessToken(id.AccessToken)
		}
		return s, nil
	}
	s := NewSession(id, r.opts)
	r.sessions.Add(id.OwnerID, s)
	return s, nil
}

// SignOut closes and forgets the owner's session.
func (r *Registry) SignOut(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.Remove(ownerID)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Close signs every owner out.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.Purge()
}
