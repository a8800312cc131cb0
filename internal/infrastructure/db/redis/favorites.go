package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// toggleScript flips set membership in one step and returns 1 when the member
// is now present.
var toggleScript = redis.NewScript(`
if redis.call("SREM", KEYS[1], ARGV[1]) == 1 then
	return 0
end
redis.call("SADD", KEYS[1], ARGV[1])
return 1
`)

// favoriteClient is the subset of *redis.Client the store uses.
type favoriteClient interface {
	redis.Scripter
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
}

// FavoriteStore keeps each account's favorite videos in a Redis set.
// Key format: favorites:<account_id>
type FavoriteStore struct {
	client favoriteClient
}

func NewFavoriteStore(client *redis.Client) *FavoriteStore {
	return &FavoriteStore{client: client}
}

// Toggle removes videoID when present, adds it otherwise.
func (f *FavoriteStore) Toggle(ctx context.Context, accountID, videoID string) (bool, error) {
	n, err := toggleScript.Run(ctx, f.client, []string{f.key(accountID)}, videoID).Int()
	if err != nil {
		return false, fmt.Errorf("favorites toggle: %w", err)
	}
	return n == 1, nil
}

func (f *FavoriteStore) List(ctx context.Context, accountID string) ([]string, error) {
	ids, err := f.client.SMembers(ctx, f.key(accountID)).Result()
	if err != nil {
		return nil, fmt.Errorf("favorites list: %w", err)
	}
	return ids, nil
}

func (f *FavoriteStore) key(accountID string) string {
	return "favorites:" + accountID
}
