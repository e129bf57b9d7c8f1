package cart

import (
	"context"
	"log"
	"sync"
	"time"
)

// Syncer mirrors cart mutations to the backend order endpoint.
// Consumers define this interface, not the REST implementation.
type Syncer interface {
	Hydrate(ctx context.Context, userID string) ([]Line, error)
	Create(ctx context.Context, line Line) (string, error)
	Update(ctx context.Context, line Line) error
	Delete(ctx context.Context, userID, productID string, size Size) error
}

// Store holds the session-authoritative cart of a single user. Every
// mutation is confirmed by the backend before it is applied locally.
type Store struct {
	mu       sync.RWMutex
	userID   string
	lines    []Line
	selected map[Key]bool
	sync     Syncer
	cache    Cache // optional
}

func NewStore(userID string, syncer Syncer, cache Cache) *Store {
	return &Store{
		userID:   userID,
		selected: make(map[Key]bool),
		sync:     syncer,
		cache:    cache,
	}
}

// Hydrate replaces the local lines with the backend's order rows.
// Selection state is reset.
func (s *Store) Hydrate(ctx context.Context) error {
	lines, err := s.sync.Hydrate(ctx, s.userID)
	if err != nil {
		return &SyncError{Op: "hydrate", Err: err}
	}

	s.mu.Lock()
	s.lines = lines
	s.selected = make(map[Key]bool)
	s.mu.Unlock()

	s.refreshCache()
	return nil
}

// restore seeds the store from a cached snapshot without a backend call.
func (s *Store) restore(lines []Line) {
	s.mu.Lock()
	s.lines = lines
	s.selected = make(map[Key]bool)
	s.mu.Unlock()
}

// AddOrMerge adds quantity of a (product, size) to the cart. If a line
// with the same key exists the quantities are merged into one line, never
// duplicated. The mutation is applied locally only after the backend
// confirms it.
func (s *Store) AddOrMerge(ctx context.Context, productID string, snap Snapshot, size Size, quantity int) error {
	if !size.Valid() {
		return ErrNoSize
	}
	if quantity < 1 {
		return ErrBadQuantity
	}

	key := Key{ProductID: productID, Size: size}

	s.mu.RLock()
	idx, existing := s.find(key)
	s.mu.RUnlock()

	if idx >= 0 {
		merged := existing
		merged.Quantity += quantity
		if err := s.sync.Update(ctx, merged); err != nil {
			return &SyncError{Op: "update", Err: err}
		}

		s.mu.Lock()
		if i, _ := s.find(key); i >= 0 {
			s.lines[i].Quantity = merged.Quantity
		}
		s.mu.Unlock()

		s.refreshCache()
		return nil
	}

	line := Line{
		ProductID: productID,
		UserID:    s.userID,
		Quantity:  quantity,
		Size:      size,
		Snapshot:  snap,
		AddedAt:   time.Now(),
	}

	id, err := s.sync.Create(ctx, line)
	if err != nil {
		return &SyncError{Op: "create", Err: err}
	}
	line.ID = id

	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()

	s.refreshCache()
	return nil
}

// Remove deletes the (product, size) line, backend first.
func (s *Store) Remove(ctx context.Context, productID string, size Size) error {
	key := Key{ProductID: productID, Size: size}

	s.mu.RLock()
	idx, _ := s.find(key)
	s.mu.RUnlock()
	if idx < 0 {
		return ErrNotInCart
	}

	if err := s.sync.Delete(ctx, s.userID, productID, size); err != nil {
		return &SyncError{Op: "delete", Err: err}
	}

	s.mu.Lock()
	if i, _ := s.find(key); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
	delete(s.selected, key)
	s.mu.Unlock()

	s.refreshCache()
	return nil
}

// ToggleSelect flips membership of a line in the current selection.
// Purely local, no backend effect.
func (s *Store) ToggleSelect(productID string, size Size) error {
	key := Key{ProductID: productID, Size: size}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, _ := s.find(key); i < 0 {
		return ErrNotInCart
	}
	if s.selected[key] {
		delete(s.selected, key)
	} else {
		s.selected[key] = true
	}
	return nil
}

// SelectAll selects every line, or clears the selection when everything
// is already selected.
func (s *Store) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selected) == len(s.lines) && len(s.lines) > 0 {
		s.selected = make(map[Key]bool)
		return
	}
	for _, l := range s.lines {
		s.selected[l.Key()] = true
	}
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Selected returns the selected lines in cart order.
func (s *Store) Selected() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Line
	for _, l := range s.lines {
		if s.selected[l.Key()] {
			out = append(out, l)
		}
	}
	return out
}

// SelectedTotal is the sum of price times quantity over the selection.
func (s *Store) SelectedTotal() int64 {
	var total int64
	for _, l := range s.Selected() {
		total += l.Subtotal()
	}
	return total
}

// ClearSelection drops the selection set without touching the lines.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = make(map[Key]bool)
	s.mu.Unlock()
}

// DropSelected removes the selected lines from the cart. Used after a
// successful checkout, when those rows leave cart status server-side.
func (s *Store) DropSelected() {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if !s.selected[l.Key()] {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	s.selected = make(map[Key]bool)
	s.mu.Unlock()

	s.refreshCache()
}

func (s *Store) find(key Key) (int, Line) {
	for i, l := range s.lines {
		if l.Key() == key {
			return i, l
		}
	}
	return -1, Line{}
}

func (s *Store) refreshCache() {
	if s.cache == nil {
		return
	}
	lines := s.Lines()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, s.userID, lines); err != nil {
		log.Printf("cart cache set error: %v", err)
	}
}
