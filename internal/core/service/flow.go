package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

// attempt tracks one form submission through the flow states.
type attempt struct {
	form  string
	state domain.FlowState
	log   zerolog.Logger
}

func newAttempt(form string, log zerolog.Logger) *attempt {
	return &attempt{form: form, state: domain.StateIdle, log: log}
}

func (a *attempt) advance(next domain.FlowState) error {
	if !a.state.CanTransitionTo(next) {
		return fmt.Errorf("%s: %w (from %s to %s)", a.form, domain.ErrInvalidTransition, a.state, next)
	}
	a.log.Debug().Str("form", a.form).Str("from", string(a.state)).Str("to", string(next)).Msg("flow transition")
	a.state = next
	return nil
}

// finish returns the attempt to idle. Every non-idle state may do so.
func (a *attempt) finish() {
	if a.state == domain.StateIdle {
		return
	}
	a.log.Debug().Str("form", a.form).Str("from", string(a.state)).Msg("flow back to idle")
	a.state = domain.StateIdle
}

// holdSubmission acquires the submit guard for key. The returned release func
// is always non-nil on success. Guard outages do not block the user.
func holdSubmission(ctx context.Context, guard ports.SubmitGuard, key string, log zerolog.Logger) (func(), error) {
	if guard == nil {
		return func() {}, nil
	}
	ok, err := guard.Acquire(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("guard_key", key).Msg("submit guard unavailable, processing anyway")
		return func() {}, nil
	}
	if !ok {
		return nil, domain.ErrSubmissionInFlight
	}
	return func() {
		if err := guard.Release(context.WithoutCancel(ctx), key); err != nil {
			log.Warn().Err(err).Str("guard_key", key).Msg("failed to release submit guard")
		}
	}, nil
}
