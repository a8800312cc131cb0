package ports

import (
	"context"

	"github.com/inmovement/patient-portal/internal/core/domain"
)

// ProfileUpdateResult is returned after a successful profile update.
type ProfileUpdateResult struct {
	Record domain.UserRecord
	Intent domain.NavigationIntent
}

type ProfileService interface {
	LoadProfile(ctx context.Context, sess *domain.Session) (*domain.UserRecord, error)
	UpdateProfile(ctx context.Context, sess *domain.Session, current domain.UserRecord, edits domain.ProfileEdits) (*ProfileUpdateResult, error)
}
