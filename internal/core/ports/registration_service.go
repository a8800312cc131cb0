package ports

import (
	"context"

	"github.com/inmovement/patient-portal/internal/core/domain"
)

// RegistrationInput is the sign-up form as submitted.
type RegistrationInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// RegistrationResult is returned after an account was created.
type RegistrationResult struct {
	AccountID string
	Email     string
	// ProfileSaved is false when the initial profile write failed. The
	// registration still succeeds in that case.
	ProfileSaved bool
	Intent       domain.NavigationIntent
}

// LoginInput is the sign-in form as submitted.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the new session and its bearer token.
type LoginResult struct {
	Session domain.Session
	Token   string
	Intent  domain.NavigationIntent
}

type RegistrationService interface {
	Register(ctx context.Context, in RegistrationInput) (*RegistrationResult, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}
