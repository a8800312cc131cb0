package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inmovement/patient-portal/internal/core/domain"
)

// ErrorResponse is the error envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Error    string                  `json:"error"`
	Fields   map[string]string       `json:"fields,omitempty"`
	Navigate domain.NavigationIntent `json:"navigate"`
}

// StatusFor maps a workflow error to its HTTP status and envelope. ok is false
// for errors the caller should treat as unexpected.
func StatusFor(err error) (status int, body ErrorResponse, ok bool) {
	body.Navigate = domain.NavigateNone

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body.Error = domain.ErrValidation.Error()
		body.Fields = ve.Fields.Failed()
		return http.StatusUnprocessableEntity, body, true
	}

	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		body.Error = pe.Message
		return http.StatusBadGateway, body, true
	}

	switch {
	case errors.Is(err, domain.ErrAlreadyRegistered):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRegistrationFailed):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrVideoNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSubmissionInFlight):
		status = http.StatusConflict
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Navigate: domain.NavigateNone}, false
	}

	// Only the sentinel text reaches the client, never the wrapped cause.
	for _, sentinel := range []error{
		domain.ErrAlreadyRegistered, domain.ErrRegistrationFailed, domain.ErrInvalidCredentials,
		domain.ErrUnauthenticated, domain.ErrProfileNotFound, domain.ErrVideoNotFound,
		domain.ErrSubmissionInFlight,
	} {
		if errors.Is(err, sentinel) {
			body.Error = sentinel.Error()
			break
		}
	}
	return status, body, true
}

// writeError renders known workflow errors and hands anything else to the
// echo error handler.
func writeError(c echo.Context, err error) error {
	status, body, ok := StatusFor(err)
	if !ok {
		return err
	}
	return c.JSON(status, body)
}
