// Package metrics defines and registers the Prometheus metrics for the patient
// portal workflow. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry on package init (promauto).
// HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inmovement/patient-portal/internal/core/domain"
)

const namespace = "patient_portal"

// ── Workflow outcomes ─────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - outcome: see Outcome
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// InitialProfileWriteFailuresTotal counts registrations whose initial profile
// document could not be written.
var InitialProfileWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "initial_profile_write_failures_total",
		Help:      "Registrations that succeeded without an initial profile document.",
	},
)

// LoginsTotal counts sign-in attempts.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ProfileUpdatesTotal counts profile update attempts.
var ProfileUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_updates_total",
		Help:      "Total number of profile update attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ValidationFailuresTotal counts rejected fields.
// Labels:
//   - form: "register", "login" or "profile"
//   - field: the form field name (e.g. "username")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of field validation failures, by form and field.",
	},
	[]string{"form", "field"},
)

// Outcome turns a workflow error into a low-cardinality label value.
func Outcome(err error) string {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "duplicate"
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return "in_flight"
	case errors.Is(err, domain.ErrRegistrationFailed), errors.Is(err, domain.ErrInvalidCredentials):
		return "gateway_error"
	case errors.Is(err, domain.ErrPersistenceFailed):
		return "persistence_error"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	}
	return "error"
}

// ObserveValidation records every failing field of a rejected form.
func ObserveValidation(form string, err error) {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return
	}
	for field := range ve.Fields.Failed() {
		ValidationFailuresTotal.WithLabelValues(form, field).Inc()
	}
}
