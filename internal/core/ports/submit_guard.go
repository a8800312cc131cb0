package ports

import "context"

// SubmitGuard keeps a form from having more than one outstanding write.
type SubmitGuard interface {
	// Acquire reports false when key is already held.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// FavoriteStore keeps the set of videos an account marked as favorite.
type FavoriteStore interface {
	// Toggle flips membership and returns whether videoID is now a favorite.
	Toggle(ctx context.Context, accountID, videoID string) (bool, error)
	List(ctx context.Context, accountID string) ([]string, error)
}
