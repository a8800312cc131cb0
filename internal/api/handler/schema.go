package handler

import (
	"strings"
	"time"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

// dateLayout is the calendar date format used for dateOfBirth.
const dateLayout = "2006-01-02"

// Shown while clinical staff have not filled in the clinical fields.
const (
	noCurrentCondition = "No current conditions on record."
	noMedicalHistory   = "No medical history on record."
)

// --- Request types ---

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// profileUpdateRequest only carries the fields the user touched.
// An empty dateOfBirth clears the stored date.
type profileUpdateRequest struct {
	FirstName   *string `json:"firstName"`
	SecondName  *string `json:"secondName"`
	DateOfBirth *string `json:"dateOfBirth"`
	Email       *string `json:"email"`
	Gender      *string `json:"gender"`
	Avatar      *string `json:"avatar"`
}

type searchQuery struct {
	Q string `query:"q" validate:"max=100"`
}

type favoriteParams struct {
	ID string `param:"id" validate:"required,max=128"`
}

// --- Response types ---

type registerResponse struct {
	AccountID    string                  `json:"accountId"`
	Email        string                  `json:"email"`
	ProfileSaved bool                    `json:"profileSaved"`
	Navigate     domain.NavigationIntent `json:"navigate"`
}

type loginResponse struct {
	Token     string                  `json:"token"`
	AccountID string                  `json:"accountId"`
	Email     string                  `json:"email"`
	Navigate  domain.NavigationIntent `json:"navigate"`
}

type profileResponse struct {
	ID               string   `json:"uid"`
	FirstName        string   `json:"firstName"`
	SecondName       string   `json:"secondName"`
	DateOfBirth      string   `json:"dateOfBirth,omitempty"`
	Age              int      `json:"age"`
	Email            string   `json:"email"`
	Gender           string   `json:"gender"`
	Avatar           string   `json:"avatar,omitempty"`
	CurrentCondition string   `json:"currentCondition"`
	MedicalHistory   string   `json:"medicalHistory"`
	Symptoms         []string `json:"symptoms"`
	TherapeuticPlans []string `json:"therapeuticPlans"`
	CreatedAt        string   `json:"createdAt"`
	ModifiedAt       string   `json:"modifiedAt"`

	Navigate domain.NavigationIntent `json:"navigate"`
}

type summaryResponse struct {
	DisplayName string `json:"displayName"`
	SecondName  string `json:"secondName"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
	Avatar      string `json:"avatar,omitempty"`
}

type videoResponse struct {
	ID          string   `json:"uid"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Symptoms    []string `json:"symptoms"`
	Favorite    bool     `json:"favorite"`
}

type homeResponse struct {
	Profile summaryResponse `json:"profile"`
	Videos  []videoResponse `json:"videos"`
}

type videoListResponse struct {
	Videos []videoResponse `json:"videos"`
}

type favoriteResponse struct {
	VideoID  string `json:"videoId"`
	Favorite bool   `json:"favorite"`
}

// --- Mapping ---

// edits converts the request into domain edits. A malformed date is reported
// the same way the validator reports field errors.
func (r profileUpdateRequest) edits() (domain.ProfileEdits, error) {
	e := domain.ProfileEdits{
		FirstName:  trimmed(r.FirstName),
		SecondName: trimmed(r.SecondName),
		Email:      trimmed(r.Email),
		Avatar:     r.Avatar,
	}
	if r.Gender != nil {
		g := domain.Gender(strings.ToLower(strings.TrimSpace(*r.Gender)))
		e.Gender = &g
	}
	if r.DateOfBirth != nil {
		dob, err := parseDate(*r.DateOfBirth)
		if err != nil {
			return domain.ProfileEdits{}, &domain.ValidationError{Fields: domain.FieldErrorSet{
				domain.FieldDateOfBirth: "date of birth must be a date (YYYY-MM-DD)",
			}}
		}
		e.DateOfBirth = &dob
	}
	return e, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	// Keep the calendar day as written, whatever the offset.
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func toProfileResponse(u *domain.UserRecord, now time.Time, intent domain.NavigationIntent) profileResponse {
	resp := profileResponse{
		ID:               u.ID,
		FirstName:        u.FirstName,
		SecondName:       u.SecondName,
		Age:              u.AgeAt(now),
		Email:            u.Email,
		Gender:           string(u.Gender),
		Avatar:           u.Avatar,
		CurrentCondition: orDefault(u.CurrentCondition, noCurrentCondition),
		MedicalHistory:   orDefault(u.MedicalHistory, noMedicalHistory),
		Symptoms:         nonNil(u.Symptoms),
		TherapeuticPlans: nonNil(u.TherapeuticPlans),
		CreatedAt:        u.CreatedAt.UTC().Format(time.RFC3339),
		ModifiedAt:       u.ModifiedAt.UTC().Format(time.RFC3339),
		Navigate:         intent,
	}
	if u.DateOfBirth != nil && !u.DateOfBirth.IsZero() {
		resp.DateOfBirth = u.DateOfBirth.UTC().Format(dateLayout)
	}
	return resp
}

func toSummaryResponse(p ports.ProfileSummary) summaryResponse {
	return summaryResponse{
		DisplayName: p.DisplayName,
		SecondName:  p.SecondName,
		Email:       p.Email,
		Age:         p.Age,
		Avatar:      p.Avatar,
	}
}

func toVideoResponses(views []ports.VideoView) []videoResponse {
	out := make([]videoResponse, 0, len(views))
	for _, v := range views {
		out = append(out, videoResponse{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			URL:         v.URL,
			Thumbnail:   v.Thumbnail,
			Symptoms:    nonNil(v.Symptoms),
			Favorite:    v.Favorite,
		})
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
