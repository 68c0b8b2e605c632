package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"bargainbay/internal/domain"
)

// ErrStale is returned when a response arrives after a newer request of the
// same kind was started; its data is discarded.
var ErrStale = errors.New("superseded by a newer request")

type requestIDKey struct{}

// WithRequestID tags ctx with the correlation id of an outgoing call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Ticket identifies one outstanding remote call.
type Ticket struct {
	ID  string
	seq uint64
}

// Tracker serializes one kind of remote call: starting a new call cancels the
// previous one, and only the latest ticket may apply its response.
type Tracker struct {
	seq    uint64
	cancel context.CancelFunc
}

// Begin must be called with the owning session locked.
func (t *Tracker) Begin(parent context.Context) (context.Context, Ticket) {
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	tk := Ticket{ID: uuid.NewString(), seq: t.seq}
	ctx, cancel := context.WithCancel(WithRequestID(parent, tk.ID))
	t.cancel = cancel
	return ctx, tk
}

// Finish reports whether tk is still current and releases its context.
// Must be called with the owning session locked.
func (t *Tracker) Finish(tk Ticket) bool {
	if tk.seq != t.seq {
		return false
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	return true
}

// Abort cancels the outstanding call, if any, and invalidates its ticket.
func (t *Tracker) Abort() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.seq++
}

// Session is the explicit view state of one shopper. The engine types it
// holds are single-threaded; mu serializes access from concurrent requests.
type Session struct {
	mu sync.Mutex

	ID       string
	Creds    domain.Credentials
	Cart     *Cart
	Wishlist *Wishlist
	Coupon   CouponState
	Search   SearchState

	// Last accepted snapshots from the remote service.
	Products []domain.Product
	Orders   []domain.Order

	Address string
	Payment domain.PaymentMethod

	productLoads Tracker
	orderLoads   Tracker
}

func NewSession(id string) *Session {
	s := &Session{ID: id}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.Creds = domain.Credentials{}
	s.Cart = NewCart()
	s.Wishlist = NewWishlist()
	s.Coupon = CouponState{}
	s.Search = NewSearchState()
	s.Products = nil
	s.Orders = nil
	s.resetCheckout()
	s.productLoads.Abort()
	s.orderLoads.Abort()
}

func (s *Session) resetCheckout() {
	s.Address = ""
	s.Payment = domain.PaymentCOD
}

// Reset returns the session to its logged-out state, cancelling outstanding calls.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Credentials returns the shopper's current token and role.
func (s *Session) Credentials() domain.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Creds
}

// View runs fn with the session locked. fn must not block on remote calls.
func (s *Session) View(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

func (s *Session) product(id string) (domain.Product, bool) {
	for _, p := range s.Products {
		if string(p.ID) == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// SessionStore is the in-memory registry of live sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]*Session{}}
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *SessionStore) GetOrCreate(id string) *Session {
	if s, ok := st.Get(id); ok {
		return s
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := NewSession(id)
	st.sessions[id] = s
	return s
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
