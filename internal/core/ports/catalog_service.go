package ports

import (
	"context"

	"github.com/inmovement/patient-portal/internal/core/domain"
)

// ProfileSummary is the header shown on the home screen.
type ProfileSummary struct {
	DisplayName string
	SecondName  string
	Email       string
	Age         int
	Avatar      string
}

// VideoView is a catalog entry decorated for the current session.
type VideoView struct {
	domain.VideoItem
	Favorite bool
}

// HomeView is everything the home screen needs in one round trip.
type HomeView struct {
	Profile ProfileSummary
	Videos  []VideoView
}

type CatalogService interface {
	Home(ctx context.Context, sess *domain.Session) (*HomeView, error)
	SearchVideos(ctx context.Context, sess *domain.Session, query string) ([]VideoView, error)
	ToggleFavorite(ctx context.Context, sess *domain.Session, videoID string) (bool, error)
	Favorites(ctx context.Context, sess *domain.Session) ([]VideoView, error)
}
