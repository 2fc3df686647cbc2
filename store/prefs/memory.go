package prefs

import (
	"context"
	"strconv"
	"sync"
)

// MemoryStore is the in-process Store used in tests and when Redis is not
// configured. One mutex serializes every read-modify-write.
type MemoryStore struct {
	mu     sync.Mutex
	sets   map[string]map[string]struct{}
	bools  map[string]bool
	floats map[string]float64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sets:   make(map[string]map[string]struct{}),
		bools:  make(map[string]bool),
		floats: make(map[string]float64),
	}
}

func (s *MemoryStore) members(key string) []string {
	out := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		out = append(out, m)
	}
	return out
}

func (s *MemoryStore) FavoriteIDs(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeIDs(s.members(KeyFavoriteIDs)), nil
}

func (s *MemoryStore) CartIDs(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeIDs(s.members(KeyCartIDs)), nil
}

func (s *MemoryStore) toggle(key string, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[key]
	if set == nil {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	m := strconv.FormatInt(id, 10)
	if _, ok := set[m]; ok {
		delete(set, m)
		return false
	}
	set[m] = struct{}{}
	return true
}

func (s *MemoryStore) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	return s.toggle(KeyFavoriteIDs, id), nil
}

func (s *MemoryStore) ToggleCart(ctx context.Context, id int64) (bool, error) {
	return s.toggle(KeyCartIDs, id), nil
}

func (s *MemoryStore) override(key string, ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[key] = encodeIDs(ids)
}

func (s *MemoryStore) OverrideFavorites(ctx context.Context, ids []int64) error {
	s.override(KeyFavoriteIDs, ids)
	return nil
}

func (s *MemoryStore) OverrideCart(ctx context.Context, ids []int64) error {
	s.override(KeyCartIDs, ids)
	return nil
}

func (s *MemoryStore) ClearFavorites(ctx context.Context) error {
	return s.OverrideFavorites(ctx, nil)
}

func (s *MemoryStore) ClearCart(ctx context.Context) error {
	return s.OverrideCart(ctx, nil)
}

func (s *MemoryStore) PriceDropEnabled(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.bools[KeyPriceDropNotifications]
	if !ok {
		return false, nil
	}
	return v, nil
}

func (s *MemoryStore) SetPriceDropEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bools[KeyPriceDropNotifications] = enabled
	return nil
}

func (s *MemoryStore) DarkThemeEnabled(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.bools[KeyDarkTheme]
	if !ok {
		return true, nil
	}
	return v, nil
}

func (s *MemoryStore) SetDarkThemeEnabled(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bools[KeyDarkTheme] = enabled
	return nil
}

func (s *MemoryStore) LastNotifiedPrice(ctx context.Context, id int64) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.floats[lastNotifiedKey(id)]
	return v, ok, nil
}

func (s *MemoryStore) SetLastNotifiedPrice(ctx context.Context, id int64, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats[lastNotifiedKey(id)] = price
	return nil
}

func (s *MemoryStore) ClearLastNotifiedPrice(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.floats, lastNotifiedKey(id))
	return nil
}
