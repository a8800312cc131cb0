package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inmovement/patient-portal/internal/api/metrics"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

type AuthHandler struct {
	service ports.RegistrationService
}

func NewAuthHandler(service ports.RegistrationService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a patient account and its initial profile.
//
// @Summary      Register a new patient
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Sign-up form"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.service.Register(c.Request().Context(), ports.RegistrationInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	metrics.RegistrationsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		metrics.ObserveValidation("register", err)
		return writeError(c, err)
	}
	if !res.ProfileSaved {
		metrics.InitialProfileWriteFailuresTotal.Inc()
	}

	return c.JSON(http.StatusCreated, registerResponse{
		AccountID:    res.AccountID,
		Email:        res.Email,
		ProfileSaved: res.ProfileSaved,
		Navigate:     res.Intent,
	})
}

// Login authenticates a patient and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Sign-in form"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	metrics.LoginsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		metrics.ObserveValidation("login", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     res.Token,
		AccountID: res.Session.AccountID,
		Email:     res.Session.Email,
		Navigate:  res.Intent,
	})
}
