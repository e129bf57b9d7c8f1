package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Manager owns one Store per logged-in user and hydrates it on first use.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	sync   Syncer
	cache  Cache
	sfg    singleflight.Group // prevents concurrent hydrations for the same user
}

func NewManager(syncer Syncer, cache Cache) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		sync:   syncer,
		cache:  cache,
	}
}

// ForUser returns the user's cart store, restoring it from the cache or
// hydrating it from the backend when this instance has not seen the user
// yet.
func (m *Manager) ForUser(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	if st, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return st, nil
	}
	m.mu.Unlock()

	v, err, _ := m.sfg.Do(userID, func() (interface{}, error) {
		st := NewStore(userID, m.sync, m.cache)

		if m.cache != nil {
			lines, cacheErr := m.cache.Get(ctx, userID)
			if cacheErr == nil {
				st.restore(lines)
				m.put(userID, st)
				return st, nil
			}
			if !errors.Is(cacheErr, ErrCacheMiss) {
				log.Printf("cart cache get error: %v", cacheErr)
			}
		}

		if err := st.Hydrate(ctx); err != nil {
			return nil, err
		}
		m.put(userID, st)
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

// Invalidate forgets the in-memory store and cached snapshot so the next
// read re-hydrates from the backend.
func (m *Manager) Invalidate(userID string) {
	m.mu.Lock()
	delete(m.stores, userID)
	m.mu.Unlock()

	if m.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.cache.Delete(ctx, userID); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}

func (m *Manager) put(userID string, st *Store) {
	m.mu.Lock()
	m.stores[userID] = st
	m.mu.Unlock()
}
