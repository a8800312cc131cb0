package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
	"github.com/inmovement/patient-portal/internal/core/validation"
)

type stubRegistrationService struct {
	registerFn func(ctx context.Context, in ports.RegistrationInput) (*ports.RegistrationResult, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, in ports.RegistrationInput) (*ports.RegistrationResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubRegistrationService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

type stubProfileService struct {
	loadFn   func(ctx context.Context, sess *domain.Session) (*domain.UserRecord, error)
	updateFn func(ctx context.Context, sess *domain.Session, current domain.UserRecord, edits domain.ProfileEdits) (*ports.ProfileUpdateResult, error)
}

func (s *stubProfileService) LoadProfile(ctx context.Context, sess *domain.Session) (*domain.UserRecord, error) {
	return s.loadFn(ctx, sess)
}

func (s *stubProfileService) UpdateProfile(ctx context.Context, sess *domain.Session, current domain.UserRecord, edits domain.ProfileEdits) (*ports.ProfileUpdateResult, error) {
	return s.updateFn(ctx, sess, current, edits)
}

type stubCatalogService struct {
	homeFn      func(ctx context.Context, sess *domain.Session) (*ports.HomeView, error)
	searchFn    func(ctx context.Context, sess *domain.Session, query string) ([]ports.VideoView, error)
	toggleFn    func(ctx context.Context, sess *domain.Session, videoID string) (bool, error)
	favoritesFn func(ctx context.Context, sess *domain.Session) ([]ports.VideoView, error)
}

func (s *stubCatalogService) Home(ctx context.Context, sess *domain.Session) (*ports.HomeView, error) {
	return s.homeFn(ctx, sess)
}

func (s *stubCatalogService) SearchVideos(ctx context.Context, sess *domain.Session, query string) ([]ports.VideoView, error) {
	return s.searchFn(ctx, sess, query)
}

func (s *stubCatalogService) ToggleFavorite(ctx context.Context, sess *domain.Session, videoID string) (bool, error) {
	return s.toggleFn(ctx, sess, videoID)
}

func (s *stubCatalogService) Favorites(ctx context.Context, sess *domain.Session) ([]ports.VideoView, error) {
	return s.favoritesFn(ctx, sess)
}

// newContext builds a request context. A non-empty accountID simulates the
// Auth middleware.
func newContext(method, target string, body io.Reader, accountID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator(validation.New())
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if accountID != "" {
		c.Set(ctxAccountID, accountID)
		c.Set(ctxEmail, "ana@example.com")
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

// httpCode returns the status of an echo.HTTPError returned by a handler.
func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
