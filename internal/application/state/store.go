package state

import (
	"sync"

	"github.com/bitcoindeepa/miniapp-gateway/internal/application/telegram"
	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
)

// Snapshot is the session view state: identity, subscription and the
// community member counter the mini app surfaces.
type Snapshot struct {
	User          *telegram.User
	Authenticated bool
	Subscription  *entity.Subscription
	MemberCount   int64
}

// Action is a typed state mutation. Actions are applied in dispatch order
// under the store lock, so observed ordering is deterministic.
type Action interface {
	apply(*Snapshot)
}

// SetUser records the authenticated identity
type SetUser struct {
	User *telegram.User
}

func (a SetUser) apply(s *Snapshot) {
	s.User = a.User
	s.Authenticated = a.User != nil
}

// ClearUser drops the identity and everything derived from it
type ClearUser struct{}

func (ClearUser) apply(s *Snapshot) {
	s.User = nil
	s.Authenticated = false
	s.Subscription = nil
}

// SetSubscription records the current subscription snapshot (nil for none)
type SetSubscription struct {
	Subscription *entity.Subscription
}

func (a SetSubscription) apply(s *Snapshot) {
	s.Subscription = a.Subscription
}

// SetMemberCount records the community member counter
type SetMemberCount struct {
	Count int64
}

func (a SetMemberCount) apply(s *Snapshot) {
	s.MemberCount = a.Count
}

// Store is an injectable state container. All mutation goes through typed
// actions; there is no ambient global state.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// Dispatch applies actions atomically, in order
func (s *Store) Dispatch(actions ...Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		a.apply(&s.snap)
	}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
