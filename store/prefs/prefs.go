// Package prefs is the durable key-value preference store: the persisted
// favorite/cart id sets, notification/theme toggles, and the per-favorite
// last-notified price baselines. Ids are stored string-encoded.
package prefs

import "context"

// Logical keys in the backing store.
const (
	KeyFavoriteIDs            = "favorite_ids"
	KeyCartIDs                = "cart_ids"
	KeyPriceDropNotifications = "price_drop_notifications"
	KeyDarkTheme              = "dark_theme"

	lastNotifiedPrefix = "last_notified_price:"
)

// Store is the persisted preference surface. Implementations must
// serialize read-modify-write cycles per key, so concurrent toggles of
// the same product cannot lose updates.
type Store interface {
	FavoriteIDs(ctx context.Context) ([]int64, error)
	CartIDs(ctx context.Context) ([]int64, error)

	// ToggleFavorite flips membership of id in the favorite set and
	// reports whether the id is present afterwards.
	ToggleFavorite(ctx context.Context, id int64) (bool, error)
	ToggleCart(ctx context.Context, id int64) (bool, error)

	OverrideFavorites(ctx context.Context, ids []int64) error
	OverrideCart(ctx context.Context, ids []int64) error
	ClearFavorites(ctx context.Context) error
	ClearCart(ctx context.Context) error

	// PriceDropEnabled defaults to false, DarkThemeEnabled to true.
	PriceDropEnabled(ctx context.Context) (bool, error)
	SetPriceDropEnabled(ctx context.Context, enabled bool) error
	DarkThemeEnabled(ctx context.Context) (bool, error)
	SetDarkThemeEnabled(ctx context.Context, enabled bool) error

	// LastNotifiedPrice is the price-drop baseline for a favorite.
	LastNotifiedPrice(ctx context.Context, id int64) (float64, bool, error)
	SetLastNotifiedPrice(ctx context.Context, id int64, price float64) error
	ClearLastNotifiedPrice(ctx context.Context, id int64) error
}
