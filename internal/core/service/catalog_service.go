package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

// CatalogService serves the home screen: profile header, video catalog and favorites.
type CatalogService struct {
	store     ports.RecordStore
	favorites ports.FavoriteStore
	logger    zerolog.Logger
	now       func() time.Time
}

func NewCatalogService(store ports.RecordStore, favorites ports.FavoriteStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{store: store, favorites: favorites, logger: logger, now: time.Now}
}

// Home returns the profile summary and every enabled video.
func (s *CatalogService) Home(ctx context.Context, sess *domain.Session) (*ports.HomeView, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	summary, err := s.summary(ctx, sess)
	if err != nil {
		return nil, err
	}
	videos, err := s.catalog(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &ports.HomeView{Profile: summary, Videos: videos}, nil
}

// SearchVideos filters the catalog by a case-insensitive title match.
func (s *CatalogService) SearchVideos(ctx context.Context, sess *domain.Session, query string) ([]ports.VideoView, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	videos, err := s.catalog(ctx, sess)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return videos, nil
	}
	out := make([]ports.VideoView, 0, len(videos))
	for _, v := range videos {
		if v.MatchesTitle(query) {
			out = append(out, v)
		}
	}
	return out, nil
}

// ToggleFavorite flips the favorite mark of an existing video.
func (s *CatalogService) ToggleFavorite(ctx context.Context, sess *domain.Session, videoID string) (bool, error) {
	if !sess.Authenticated() {
		return false, domain.ErrUnauthenticated
	}
	if _, err := s.store.FindOne(ctx, ports.CollectionVideos, "uid", videoID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return false, domain.ErrVideoNotFound
		}
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	fav, err := s.favorites.Toggle(ctx, sess.AccountID, videoID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return fav, nil
}

// Favorites returns the catalog entries marked as favorite.
func (s *CatalogService) Favorites(ctx context.Context, sess *domain.Session) ([]ports.VideoView, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	videos, err := s.catalog(ctx, sess)
	if err != nil {
		return nil, err
	}
	out := make([]ports.VideoView, 0)
	for _, v := range videos {
		if v.Favorite {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *CatalogService) summary(ctx context.Context, sess *domain.Session) (ports.ProfileSummary, error) {
	doc, err := s.store.FindOne(ctx, ports.CollectionPatients, "uid", sess.AccountID)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return ports.ProfileSummary{}, fmt.Errorf("home: load profile: %w", err)
		}
		// The initial profile write may have failed at registration.
		s.logger.Warn().Str("account_id", sess.AccountID).Msg("no profile document, using session identity")
		doc = ports.Document{"email": sess.Email}
	}

	rec := patientFromDocument(doc)
	return ports.ProfileSummary{
		DisplayName: rec.DisplayName(),
		SecondName:  rec.SecondName,
		Email:       rec.Email,
		Age:         rec.AgeAt(s.now()),
		Avatar:      rec.Avatar,
	}, nil
}

// catalog lists enabled videos decorated with the session's favorites.
// Favorites are decoration only; an unavailable favorite store is logged.
func (s *CatalogService) catalog(ctx context.Context, sess *domain.Session) ([]ports.VideoView, error) {
	docs, err := s.store.Find(ctx, ports.CollectionVideos, "", nil)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	favs := make(map[string]struct{})
	ids, err := s.favorites.List(ctx, sess.AccountID)
	if err != nil {
		s.logger.Warn().Err(err).Str("account_id", sess.AccountID).Msg("failed to load favorites")
	}
	for _, id := range ids {
		favs[id] = struct{}{}
	}

	out := make([]ports.VideoView, 0, len(docs))
	for _, doc := range docs {
		v := videoFromDocument(doc)
		if !v.Enabled {
			continue
		}
		_, fav := favs[v.ID]
		out = append(out, ports.VideoView{VideoItem: v, Favorite: fav})
	}
	return out, nil
}
