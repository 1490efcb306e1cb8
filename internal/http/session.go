package http

import (
	"sync"

	"github.com/google/uuid"

	"github.com/MySagra/mycassa-sub000/internal/cart"
	"github.com/MySagra/mycassa-sub000/internal/domain"
)

// Session is one order-building session at the register: a cart plus the
// order header fields typed alongside it. Handlers serialize access through
// the session mutex; the cart itself does no locking.
type Session struct {
	ID string

	mu            sync.Mutex
	Cart          *cart.Cart
	Customer      string
	Table         string
	PaymentMethod domain.PaymentMethod
}

func (s *Session) lock()   { s.mu.Lock() }
func (s *Session) unlock() { s.mu.Unlock() }

// reset clears the cart and the order header after a successful submission.
func (s *Session) reset() {
	s.Cart.Clear()
	s.Customer = ""
	s.Table = ""
	s.PaymentMethod = domain.PaymentCash
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ids      cart.IDGenerator
}

func NewSessionStore(ids cart.IDGenerator) *SessionStore {
	if ids == nil {
		ids = cart.UUIDGenerator{}
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ids:      ids,
	}
}

func (st *SessionStore) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	session := &Session{
		ID:            uuid.NewString(),
		Cart:          cart.New(st.ids),
		PaymentMethod: domain.PaymentCash,
	}
	st.sessions[session.ID] = session
	return session
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
