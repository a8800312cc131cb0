package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
	"github.com/inmovement/patient-portal/internal/core/validation"
)

const msgProfileNotSaved = "could not save your information, please try again"

// ProfileService loads and updates the patient profile of the session's account.
type ProfileService struct {
	store     ports.RecordStore
	guard     ports.SubmitGuard
	validator *validation.Validator
	logger    zerolog.Logger
	now       func() time.Time
}

func NewProfileService(store ports.RecordStore, guard ports.SubmitGuard, validator *validation.Validator, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		store:     store,
		guard:     guard,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// LoadProfile fetches the profile document whose uid is the session account.
func (s *ProfileService) LoadProfile(ctx context.Context, sess *domain.Session) (*domain.UserRecord, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	doc, err := s.store.FindOne(ctx, ports.CollectionPatients, "uid", sess.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	rec := patientFromDocument(doc)
	if rec.ID == "" {
		rec.ID = sess.AccountID
	}
	return rec, nil
}

// UpdateProfile merges edits into current, validates the merged display fields
// and writes only the edited fields plus modifiedAt. Clinical fields, createdAt
// and enabled are never written here, except when the profile document is
// missing and the merged record is created in full.
func (s *ProfileService) UpdateProfile(
	ctx context.Context,
	sess *domain.Session,
	current domain.UserRecord,
	edits domain.ProfileEdits,
) (*ports.ProfileUpdateResult, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	a := newAttempt("profile", s.logger)
	defer a.finish()

	if err := a.advance(domain.StateValidating); err != nil {
		return nil, err
	}
	merged := edits.ApplyTo(current)
	merged.ID = sess.AccountID
	if fields := s.validator.Profile(merged); !fields.OK() {
		return nil, &domain.ValidationError{Fields: fields}
	}

	release, err := holdSubmission(ctx, s.guard, "profile:"+sess.AccountID, s.logger)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := a.advance(domain.StatePersistingProfile); err != nil {
		return nil, err
	}
	modifiedAt := s.now().UTC()
	if modifiedAt.Before(current.CreatedAt) {
		modifiedAt = current.CreatedAt
	}
	merged.ModifiedAt = modifiedAt
	err = s.store.UpdateFields(ctx, ports.CollectionPatients, sess.AccountID, editsDocument(edits, modifiedAt))
	if errors.Is(err, domain.ErrRecordNotFound) {
		// The initial write at registration never landed; store the whole record.
		s.logger.Warn().Str("account_id", sess.AccountID).Msg("no profile document, creating it")
		err = s.store.Create(ctx, ports.CollectionPatients, sess.AccountID, patientDocument(&merged))
	}
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", sess.AccountID).Msg("failed to update profile")
		return nil, &domain.PersistenceError{Message: msgProfileNotSaved, Cause: err}
	}

	s.logger.Info().Str("account_id", sess.AccountID).Msg("profile updated")

	return &ports.ProfileUpdateResult{Record: merged, Intent: domain.NavigateHome}, nil
}
