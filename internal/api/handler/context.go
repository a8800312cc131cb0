package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/inmovement/patient-portal/internal/core/domain"
)

// Context keys set by the Auth middleware.
const (
	ctxAccountID = "account_id"
	ctxEmail     = "email"
)

// ctxSession builds the caller's session from the claims injected by the Auth
// middleware. A missing account id yields ErrUnauthenticated before any
// service call.
func ctxSession(c echo.Context) (*domain.Session, error) {
	accountID, _ := c.Get(ctxAccountID).(string)
	if accountID == "" {
		return nil, domain.ErrUnauthenticated
	}
	email, _ := c.Get(ctxEmail).(string)
	return &domain.Session{AccountID: accountID, Email: email}, nil
}
