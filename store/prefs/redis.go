package prefs

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists preferences in Redis: id sets as Redis sets,
// toggles and price baselines as plain keys. A process-wide mutex
// serializes read-modify-write cycles; the service owns its preference
// keys, so single-writer per process is enough.
type RedisStore struct {
	mu     sync.Mutex
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "easypromo:"}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) idSet(ctx context.Context, key string) ([]int64, error) {
	members, err := s.client.SMembers(ctx, s.key(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("prefs: read %s: %w", key, err)
	}
	return decodeIDs(members), nil
}

func (s *RedisStore) FavoriteIDs(ctx context.Context) ([]int64, error) {
	return s.idSet(ctx, KeyFavoriteIDs)
}

func (s *RedisStore) CartIDs(ctx context.Context) ([]int64, error) {
	return s.idSet(ctx, KeyCartIDs)
}

func (s *RedisStore) toggle(ctx context.Context, key string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	member := strconv.FormatInt(id, 10)
	present, err := s.client.SIsMember(ctx, s.key(key), member).Result()
	if err != nil {
		return false, fmt.Errorf("prefs: toggle %s: %w", key, err)
	}
	if present {
		if err := s.client.SRem(ctx, s.key(key), member).Err(); err != nil {
			return false, fmt.Errorf("prefs: toggle %s: %w", key, err)
		}
		return false, nil
	}
	if err := s.client.SAdd(ctx, s.key(key), member).Err(); err != nil {
		return false, fmt.Errorf("prefs: toggle %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	return s.toggle(ctx, KeyFavoriteIDs, id)
}

func (s *RedisStore) ToggleCart(ctx context.Context, id int64) (bool, error) {
	return s.toggle(ctx, KeyCartIDs, id)
}

func (s *RedisStore) override(ctx context.Context, key string, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(key))
	if len(ids) > 0 {
		members := make([]interface{}, 0, len(ids))
		for m := range encodeIDs(ids) {
			members = append(members, m)
		}
		pipe.SAdd(ctx, s.key(key), members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("prefs: override %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) OverrideFavorites(ctx context.Context, ids []int64) error {
	return s.override(ctx, KeyFavoriteIDs, ids)
}

func (s *RedisStore) OverrideCart(ctx context.Context, ids []int64) error {
	return s.override(ctx, KeyCartIDs, ids)
}

func (s *RedisStore) ClearFavorites(ctx context.Context) error {
	return s.override(ctx, KeyFavoriteIDs, nil)
}

func (s *RedisStore) ClearCart(ctx context.Context) error {
	return s.override(ctx, KeyCartIDs, nil)
}

func (s *RedisStore) getBool(ctx context.Context, key string, def bool) (bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("prefs: read %s: %w", key, err)
	}
	return v == "1", nil
}

func (s *RedisStore) setBool(ctx context.Context, key string, enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	if err := s.client.Set(ctx, s.key(key), v, 0).Err(); err != nil {
		return fmt.Errorf("prefs: write %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) PriceDropEnabled(ctx context.Context) (bool, error) {
	return s.getBool(ctx, KeyPriceDropNotifications, false)
}

func (s *RedisStore) SetPriceDropEnabled(ctx context.Context, enabled bool) error {
	return s.setBool(ctx, KeyPriceDropNotifications, enabled)
}

func (s *RedisStore) DarkThemeEnabled(ctx context.Context) (bool, error) {
	return s.getBool(ctx, KeyDarkTheme, true)
}

func (s *RedisStore) SetDarkThemeEnabled(ctx context.Context, enabled bool) error {
	return s.setBool(ctx, KeyDarkTheme, enabled)
}

func (s *RedisStore) LastNotifiedPrice(ctx context.Context, id int64) (float64, bool, error) {
	v, err := s.client.Get(ctx, s.key(lastNotifiedKey(id))).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("prefs: read baseline %d: %w", id, err)
	}
	price, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, nil
	}
	return price, true, nil
}

func (s *RedisStore) SetLastNotifiedPrice(ctx context.Context, id int64, price float64) error {
	v := strconv.FormatFloat(price, 'f', -1, 64)
	if err := s.client.Set(ctx, s.key(lastNotifiedKey(id)), v, 0).Err(); err != nil {
		return fmt.Errorf("prefs: write baseline %d: %w", id, err)
	}
	return nil
}

func (s *RedisStore) ClearLastNotifiedPrice(ctx context.Context, id int64) error {
	if err := s.client.Del(ctx, s.key(lastNotifiedKey(id))).Err(); err != nil {
		return fmt.Errorf("prefs: clear baseline %d: %w", id, err)
	}
	return nil
}
