package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

func newCatalogFixture() (*CatalogService, *memStore, *memFavorites) {
	store := newMemStore()
	favs := newMemFavorites()

	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	store.put(ports.CollectionPatients, "uid-1", ports.Document{
		"uid":         "uid-1",
		"firstName":   "",
		"secondName":  "Lopez",
		"email":       "ana@x.com",
		"dateOfBirth": dob,
		"enabled":     "true",
	})
	store.put(ports.CollectionVideos, "v1", ports.Document{
		"uid": "v1", "title": "Knee Stretching", "url": "https://v/1", "enabled": true,
		"symptoms": []any{"knee pain", 42},
	})
	store.put(ports.CollectionVideos, "v2", ports.Document{
		"uid": "v2", "title": "Back routine", "url": "https://v/2", "enabled": true,
	})
	store.put(ports.CollectionVideos, "v3", ports.Document{
		"uid": "v3", "title": "Retired knee video", "enabled": false,
	})

	svc := NewCatalogService(store, favs, discardLogger)
	svc.now = fixedClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	return svc, store, favs
}

func TestHome(t *testing.T) {
	svc, _, favs := newCatalogFixture()
	favs.sets["uid-1"] = map[string]bool{"v2": true}

	view, err := svc.Home(context.Background(), session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Profile.DisplayName != "ana" {
		t.Errorf("expected local part fallback, got %q", view.Profile.DisplayName)
	}
	if view.Profile.Age != 33 {
		t.Errorf("expected age 33, got %d", view.Profile.Age)
	}
	if len(view.Videos) != 2 {
		t.Fatalf("expected two enabled videos, got %d", len(view.Videos))
	}
	if view.Videos[0].ID != "v1" || view.Videos[0].Favorite {
		t.Errorf("unexpected first video: %+v", view.Videos[0])
	}
	if len(view.Videos[0].Symptoms) != 1 {
		t.Errorf("non-string symptoms must be dropped: %v", view.Videos[0].Symptoms)
	}
	if !view.Videos[1].Favorite {
		t.Error("v2 should be marked favorite")
	}
}

func TestHome_MissingProfileFallsBackToSession(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	view, err := svc.Home(context.Background(), &domain.Session{AccountID: "uid-9", Email: "zoe@x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Profile.DisplayName != "zoe" || view.Profile.Age != 0 {
		t.Errorf("unexpected summary: %+v", view.Profile)
	}
}

func TestHome_FavoritesOutageIsNotFatal(t *testing.T) {
	svc, _, favs := newCatalogFixture()
	favs.listErr = errors.New("redis down")

	view, err := svc.Home(context.Background(), session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Videos) != 2 {
		t.Errorf("catalog should still be served, got %d", len(view.Videos))
	}
}

func TestHome_Unauthenticated(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	if _, err := svc.Home(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSearchVideos(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	got, err := svc.SearchVideos(context.Background(), session, "KNEE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "v1" {
		t.Fatalf("expected only v1, got %+v", got)
	}

	all, _ := svc.SearchVideos(context.Background(), session, "")
	if len(all) != 2 {
		t.Fatalf("empty query should return the whole catalog, got %d", len(all))
	}
}

func TestToggleFavorite(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	fav, err := svc.ToggleFavorite(ctx, session, "v1")
	if err != nil || !fav {
		t.Fatalf("expected favorite on, got %v %v", fav, err)
	}
	list, _ := svc.Favorites(ctx, session)
	if len(list) != 1 || list[0].ID != "v1" {
		t.Fatalf("unexpected favorites: %+v", list)
	}

	fav, err = svc.ToggleFavorite(ctx, session, "v1")
	if err != nil || fav {
		t.Fatalf("expected favorite off, got %v %v", fav, err)
	}
	list, _ = svc.Favorites(ctx, session)
	if len(list) != 0 {
		t.Fatalf("expected no favorites, got %+v", list)
	}

	if _, err := svc.ToggleFavorite(ctx, session, "nope"); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}
