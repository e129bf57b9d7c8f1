package checkout

import (
	"sync"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
)

// Manager keeps at most one live checkout session per user so a failed
// purchase persist can be retried against the same gateway invoice.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	gateway  Gateway
	recorder Recorder
	stock    StockChecker

	successURL string
	failureURL string
}

func NewManager(gateway Gateway, recorder Recorder, stock StockChecker, successURL, failureURL string) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		gateway:    gateway,
		recorder:   recorder,
		stock:      stock,
		successURL: successURL,
		failureURL: failureURL,
	}
}

// Begin opens a checkout session over the cart's current selection. An
// in-flight session that already holds an invoice is returned as-is so
// the retry does not create a second invoice.
func (m *Manager) Begin(userID, email string, st *cart.Store) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[userID]; ok && existing.Status() == StatusOrderPersisted {
		return existing, nil
	}

	items := st.Selected()
	if len(items) == 0 {
		return nil, ErrEmptySelection
	}

	s := m.newSession(userID, email, items)
	s.cart = st
	m.sessions[userID] = s
	return s, nil
}

// BeginBuyNow opens a singleton-session checkout straight from a product
// page; the line has no persisted cart identifier.
func (m *Manager) BeginBuyNow(userID, email string, line cart.Line) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[userID]; ok && existing.Status() == StatusOrderPersisted {
		return existing
	}

	s := m.newSession(userID, email, []cart.Line{line})
	m.sessions[userID] = s
	return s
}

// Current returns the user's live session, if any.
func (m *Manager) Current(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Abandon destroys the session, e.g. when the shopper navigates away.
func (m *Manager) Abandon(userID string) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}

func (m *Manager) newSession(userID, email string, items []cart.Line) *Session {
	return &Session{
		status: StatusDrafting,
		userID: userID,
		draft: Draft{
			Items:      items,
			Tier:       DefaultTier,
			PayerEmail: email,
		},
		gateway:    m.gateway,
		recorder:   m.recorder,
		stock:      m.stock,
		successURL: m.successURL,
		failureURL: m.failureURL,
	}
}
