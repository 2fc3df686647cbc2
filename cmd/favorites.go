package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jyagua/EasyPromo/config"
	"github.com/jyagua/EasyPromo/store/prefs"
)

func prefsStore() (prefs.Store, error) {
	config.InitRedis()
	if config.RedisClient == nil {
		return nil, fmt.Errorf("REDIS_ADDR not set; favorites maintenance needs the persistent store")
	}
	if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err != nil {
		return nil, fmt.Errorf("redis not reachable: %w", err)
	}
	return prefs.NewRedisStore(config.RedisClient), nil
}

var favoritesListCmd = &cobra.Command{
	Use:   "favorites:list",
	Short: "Print the persisted favorite product ids",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := prefsStore()
		if err != nil {
			fmt.Println(err)
			return
		}
		ids, err := store.FavoriteIDs(context.Background())
		if err != nil {
			fmt.Printf("Read failed: %v\n", err)
			return
		}
		if len(ids) == 0 {
			fmt.Println("No favorites persisted.")
			return
		}
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "favorites:clear",
	Short: "Clear the persisted favorite set",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := prefsStore()
		if err != nil {
			fmt.Println(err)
			return
		}
		if err := store.ClearFavorites(context.Background()); err != nil {
			fmt.Printf("Clear failed: %v\n", err)
			return
		}
		fmt.Println("Favorites cleared.")
	},
}

func init() {
	Register(favoritesListCmd)
	Register(favoritesClearCmd)
}
