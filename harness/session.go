package harness

import (
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie that carries the session ID on requests with an attached
// Session.
const SessionCookieName = "HARNESSSESSIONID"

// ErrSessionInvalidated is returned by Perform if the attached Session has been invalidated.
var ErrSessionInvalidated = errors.New("session has already been invalidated")

type sessionContextKey struct{}

// Session is server-side session state that test code can attach to requests. Handlers reach it
// through SessionFrom.
type Session struct {
	id          string
	attributes  map[string]interface{}
	isNew       bool
	invalidated bool
	lock        sync.Mutex
}

// NewSession creates an empty session with a random ID.
func NewSession() *Session {
	return &Session{
		id:         uuid.New().String(),
		attributes: make(map[string]interface{}),
		isNew:      true,
	}
}

// SessionFrom returns the Session attached to a request being served by a Harness.
func SessionFrom(r *http.Request) (*Session, bool) {
	s, ok := r.Context().Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Attribute(name string) (interface{}, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	v, ok := s.attributes[name]
	return v, ok
}

func (s *Session) SetAttribute(name string, value interface{}) {
	s.lock.Lock()
	s.attributes[name] = value
	s.lock.Unlock()
}

func (s *Session) RemoveAttribute(name string) {
	s.lock.Lock()
	delete(s.attributes, name)
	s.lock.Unlock()
}

// AttributeNames returns the names of all attributes in sorted order.
func (s *Session) AttributeNames() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	names := make([]string, 0, len(s.attributes))
	for name := range s.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsNew reports whether the session has not yet been part of a completed request.
func (s *Session) IsNew() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.isNew
}

// Invalidate discards all attributes. Performing a request with an invalidated session fails.
func (s *Session) Invalidate() {
	s.lock.Lock()
	s.invalidated = true
	s.attributes = make(map[string]interface{})
	s.lock.Unlock()
}

func (s *Session) IsInvalidated() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.invalidated
}

func (s *Session) markAccessed() {
	s.lock.Lock()
	s.isNew = false
	s.lock.Unlock()
}
