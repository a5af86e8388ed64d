// Package session holds the client-side view of the signed-in user: a
// single-writer, multi-reader broadcast store. Auth actions (login,
// refresh, logout) publish; UI components and route guards subscribe.
package session

import "sync"

// User is the client-side identity snapshot.
type User struct {
	ID       string
	Email    string
	FullName string
	Role     string
}

// Store broadcasts the current user (or nil when signed out) to any
// number of subscribers. Updates are atomic single-value replacements;
// only auth actions call Set or Clear. There is no polling.
type Store struct {
	mu      sync.RWMutex
	current *User
	nextID  int
	subs    map[int]chan *User
}

func NewStore() *Store {
	return &Store{subs: make(map[int]chan *User)}
}

// Current returns the last published user, or nil when signed out.
func (s *Store) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers a listener. The channel receives every subsequent
// publish; cancel unregisters and closes it. A subscriber that stops
// draining its channel misses updates rather than blocking the writer.
func (s *Store) Subscribe() (<-chan *User, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan *User, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Set publishes a new signed-in user.
func (s *Store) Set(u *User) {
	s.publish(u)
}

// Clear publishes the signed-out state.
func (s *Store) Clear() {
	s.publish(nil)
}

func (s *Store) publish(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = u
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
		}
	}
}
