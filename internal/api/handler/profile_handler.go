package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inmovement/patient-portal/internal/api/metrics"
	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

// ProfileHandler serves the patient's own profile.
type ProfileHandler struct {
	service ports.ProfileService
	now     func() time.Time
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service, now: time.Now}
}

// Get handles GET /profile.
//
// @Summary      Get the caller's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return writeError(c, err)
	}

	rec, err := h.service.LoadProfile(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(rec, h.now(), domain.NavigateNone))
}

// Update handles PUT /profile. Only the fields present in the body are changed.
// A missing profile document is created from the registration defaults.
//
// @Summary      Update the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileUpdateRequest  true  "Edited fields"
// @Success      200   {object}  profileResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      502   {object}  ErrorResponse
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return writeError(c, err)
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	edits, err := req.edits()
	if err != nil {
		h.observe(err)
		return writeError(c, err)
	}

	ctx := c.Request().Context()
	current, err := h.service.LoadProfile(ctx, sess)
	if errors.Is(err, domain.ErrProfileNotFound) {
		// Registration could not write the initial profile; start from its defaults.
		current, err = domain.NewUserRecord(sess.AccountID, sess.Email, h.now().UTC()), nil
	}
	if err != nil {
		return writeError(c, err)
	}

	res, err := h.service.UpdateProfile(ctx, sess, *current, edits)
	h.observe(err)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(&res.Record, h.now(), res.Intent))
}

func (h *ProfileHandler) observe(err error) {
	metrics.ProfileUpdatesTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	metrics.ObserveValidation("profile", err)
}
