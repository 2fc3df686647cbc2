package prefs

import (
	"context"
	"sync"
	"testing"
)

func TestToggleFavorite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	added, err := s.ToggleFavorite(ctx, 42)
	if err != nil || !added {
		t.Fatalf("first toggle = %v, %v, want true, nil", added, err)
	}
	ids, _ := s.FavoriteIDs(ctx)
	if len(ids) != 1 || ids[0] != 42 {
		t.Fatalf("FavoriteIDs = %v, want [42]", ids)
	}

	added, err = s.ToggleFavorite(ctx, 42)
	if err != nil || added {
		t.Fatalf("second toggle = %v, %v, want false, nil", added, err)
	}
	ids, _ = s.FavoriteIDs(ctx)
	if len(ids) != 0 {
		t.Errorf("FavoriteIDs after double toggle = %v, want empty", ids)
	}
}

func TestToggle_SameProductSerializes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	const n = 100
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ToggleFavorite(ctx, 7)
		}()
	}
	wg.Wait()

	// An even number of toggles must land back on "absent".
	ids, _ := s.FavoriteIDs(ctx)
	if len(ids) != 0 {
		t.Errorf("after %d toggles: %v, want empty", n, ids)
	}
}

func TestCartIndependentOfFavorites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.ToggleFavorite(ctx, 1)
	s.ToggleCart(ctx, 2)

	favs, _ := s.FavoriteIDs(ctx)
	cart, _ := s.CartIDs(ctx)
	if len(favs) != 1 || favs[0] != 1 {
		t.Errorf("favorites = %v", favs)
	}
	if len(cart) != 1 || cart[0] != 2 {
		t.Errorf("cart = %v", cart)
	}
}

func TestOverrideAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.OverrideFavorites(ctx, []int64{3, 1, 2}); err != nil {
		t.Fatal(err)
	}
	ids, _ := s.FavoriteIDs(ctx)
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Errorf("FavoriteIDs = %v, want sorted [1 2 3]", ids)
	}
	if err := s.ClearFavorites(ctx); err != nil {
		t.Fatal(err)
	}
	ids, _ = s.FavoriteIDs(ctx)
	if len(ids) != 0 {
		t.Errorf("after clear: %v", ids)
	}
}

func TestBoolDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	drop, _ := s.PriceDropEnabled(ctx)
	if drop {
		t.Error("PriceDropEnabled default = true, want false")
	}
	dark, _ := s.DarkThemeEnabled(ctx)
	if !dark {
		t.Error("DarkThemeEnabled default = false, want true")
	}

	s.SetPriceDropEnabled(ctx, true)
	s.SetDarkThemeEnabled(ctx, false)
	drop, _ = s.PriceDropEnabled(ctx)
	dark, _ = s.DarkThemeEnabled(ctx)
	if !drop || dark {
		t.Errorf("after set: drop=%v dark=%v", drop, dark)
	}
}

func TestLastNotifiedPrice(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok, _ := s.LastNotifiedPrice(ctx, 5); ok {
		t.Error("baseline present before first write")
	}
	s.SetLastNotifiedPrice(ctx, 5, 99.9)
	v, ok, _ := s.LastNotifiedPrice(ctx, 5)
	if !ok || v != 99.9 {
		t.Errorf("baseline = %v, %v, want 99.9, true", v, ok)
	}
	s.ClearLastNotifiedPrice(ctx, 5)
	if _, ok, _ := s.LastNotifiedPrice(ctx, 5); ok {
		t.Error("baseline still present after clear")
	}
}

func TestDecodeIDs_SkipsGarbage(t *testing.T) {
	got := decodeIDs([]string{"10", "x", "2", ""})
	if len(got) != 2 || got[0] != 2 || got[1] != 10 {
		t.Errorf("decodeIDs = %v, want [2 10]", got)
	}
}
