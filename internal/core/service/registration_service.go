package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
	"github.com/inmovement/patient-portal/internal/core/validation"
)

// RegistrationService implements sign-up and sign-in against the identity gateway.
type RegistrationService struct {
	gateway   ports.IdentityGateway
	store     ports.RecordStore
	guard     ports.SubmitGuard
	validator *validation.Validator
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewRegistrationService(
	gateway ports.IdentityGateway,
	store ports.RecordStore,
	guard ports.SubmitGuard,
	validator *validation.Validator,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *RegistrationService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &RegistrationService{
		gateway:   gateway,
		store:     store,
		guard:     guard,
		validator: validator,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Register validates the sign-up form, probes for an existing account, creates
// the account and writes the initial profile. The profile write is best-effort:
// its failure is logged and reported through ProfileSaved only.
func (s *RegistrationService) Register(ctx context.Context, in ports.RegistrationInput) (*ports.RegistrationResult, error) {
	a := newAttempt("register", s.logger)
	defer a.finish()

	if err := a.advance(domain.StateValidating); err != nil {
		return nil, err
	}
	if fields := s.validator.Registration(in); !fields.OK() {
		return nil, &domain.ValidationError{Fields: fields}
	}

	email := domain.NormalizeEmail(in.Username)
	release, err := holdSubmission(ctx, s.guard, "register:"+email, s.logger)
	if err != nil {
		return nil, err
	}
	defer release()

	// The probe is advisory; the gateway still rejects duplicates on create.
	if err := a.advance(domain.StateCheckingUniqueness); err != nil {
		return nil, err
	}
	methods, err := s.gateway.ListSignInMethods(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", gatewayCode(err)).Msg("sign-in method lookup failed")
		return nil, domain.ErrRegistrationFailed
	}
	if len(methods) > 0 {
		s.logger.Info().Int("methods", len(methods)).Msg("registration blocked, email already registered")
		return nil, domain.ErrAlreadyRegistered
	}

	if err := a.advance(domain.StateCreatingAccount); err != nil {
		return nil, err
	}
	accountID, err := s.gateway.CreateAccount(ctx, email, in.Password)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", gatewayCode(err)).Msg("account creation failed")
		return nil, domain.ErrRegistrationFailed
	}

	if err := a.advance(domain.StatePersistingProfile); err != nil {
		return nil, err
	}
	record := domain.NewUserRecord(accountID, email, s.now().UTC())
	saved := true
	if err := s.store.Create(ctx, ports.CollectionPatients, accountID, patientDocument(record)); err != nil {
		saved = false
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to save initial profile")
	}

	s.logger.Info().Str("account_id", accountID).Bool("profile_saved", saved).Msg("account registered")

	return &ports.RegistrationResult{
		AccountID:    accountID,
		Email:        email,
		ProfileSaved: saved,
		Intent:       domain.NavigateLogin,
	}, nil
}

// Login validates the sign-in form and authenticates against the gateway.
// Gateway failures all surface as ErrInvalidCredentials.
func (s *RegistrationService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	a := newAttempt("login", s.logger)
	defer a.finish()

	if err := a.advance(domain.StateValidating); err != nil {
		return nil, err
	}
	if fields := s.validator.Login(in); !fields.OK() {
		return nil, &domain.ValidationError{Fields: fields}
	}

	if err := a.advance(domain.StateAuthenticating); err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(in.Username)
	accountID, err := s.gateway.SignIn(ctx, email, in.Password)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", gatewayCode(err)).Msg("sign-in failed")
		return nil, domain.ErrInvalidCredentials
	}

	sess := domain.Session{AccountID: accountID, Email: email}
	token, err := s.generateToken(sess)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.logger.Info().Str("account_id", accountID).Msg("signed in")

	return &ports.LoginResult{Session: sess, Token: token, Intent: domain.NavigateMain}, nil
}

func (s *RegistrationService) generateToken(sess domain.Session) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   sess.AccountID,
		"email": sess.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func gatewayCode(err error) string {
	var ge *domain.GatewayError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return domain.CodeUnavailable
}
