// Package session holds the identity of whoever is using the client.
//
// There is exactly one current viewer per process. It starts anonymous, is
// set on login and cleared on logout. Screens receive the Session explicitly
// and only read it.
package session

import (
	"sync"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

// Viewer is the current user. The zero value is the anonymous viewer.
type Viewer struct {
	ID       int
	Username string
	// Token is the opaque credential sent in the Authorization header.
	Token   string
	Profile models.User
}

// LoggedIn reports whether the viewer carries a credential.
func (v Viewer) LoggedIn() bool {
	return v.ID != 0 && v.Token != ""
}

// Anonymous is the viewer before login and after logout.
var Anonymous = Viewer{}

// Session holds the current viewer and the listeners waiting on changes.
type Session struct {
	mu        sync.RWMutex
	viewer    Viewer
	nextID    int
	listeners map[int]func(Viewer)
}

// New returns a session with the anonymous viewer.
func New() *Session {
	return &Session{listeners: make(map[int]func(Viewer))}
}

// Current returns the viewer at the time of the call.
func (s *Session) Current() Viewer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewer
}

// Login replaces the current viewer and notifies listeners.
func (s *Session) Login(v Viewer) {
	s.set(v)
}

// Logout resets to the anonymous viewer and notifies listeners.
func (s *Session) Logout() {
	s.set(Anonymous)
}

// UpdateProfile refreshes the cached profile without changing identity.
// Listeners are not notified.
func (s *Session) UpdateProfile(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewer.ID == u.ID {
		s.viewer.Profile = u
		s.viewer.Username = u.Username
	}
}

// Subscribe registers fn to be called after every identity change.
// The returned func removes the listener.
func (s *Session) Subscribe(fn func(Viewer)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) set(v Viewer) {
	s.mu.Lock()
	prev := s.viewer
	s.viewer = v
	fns := make([]func(Viewer), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if prev.ID == v.ID && prev.Token == v.Token {
		return
	}
	// called outside the lock so listeners may read the session
	for _, fn := range fns {
		fn(v)
	}
}
