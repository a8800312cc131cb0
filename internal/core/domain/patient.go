package domain

import (
	"strings"
	"time"
)

// Gender is the fixed set of values a patient may declare.
type Gender string

const (
	GenderUnset  Gender = "unset"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsSet reports whether the gender carries a declared value.
func (g Gender) IsSet() bool {
	return g != "" && g != GenderUnset
}

// Valid reports whether g is one of the declared values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// UserRecord is the persisted patient profile. ID equals the identity account id.
type UserRecord struct {
	ID               string
	FirstName        string
	SecondName       string
	DateOfBirth      *time.Time
	Email            string
	Gender           Gender
	Enabled          bool
	CreatedAt        time.Time
	ModifiedAt       time.Time
	Avatar           string
	CurrentCondition string
	MedicalHistory   string
	// Symptoms and TherapeuticPlans are maintained by clinical staff.
	Symptoms         []string
	TherapeuticPlans []string
}

// NewUserRecord builds the initial profile written right after account creation.
func NewUserRecord(accountID, email string, now time.Time) *UserRecord {
	return &UserRecord{
		ID:               accountID,
		FirstName:        LocalPart(email),
		Email:            email,
		Gender:           GenderUnset,
		Enabled:          true,
		CreatedAt:        now,
		ModifiedAt:       now,
		Symptoms:         []string{},
		TherapeuticPlans: []string{},
	}
}

// DisplayName falls back to the email local part when no first name is stored.
func (u *UserRecord) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return LocalPart(u.Email)
}

// AgeAt returns the number of whole years between the date of birth and at.
// Unknown birth dates yield 0.
func (u *UserRecord) AgeAt(at time.Time) int {
	if u.DateOfBirth == nil || u.DateOfBirth.IsZero() {
		return 0
	}
	dob := u.DateOfBirth.UTC()
	at = at.UTC()
	years := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// ProfileEdits carries the display fields a user changed. Nil means untouched.
// A non-nil zero DateOfBirth means the user cleared it.
type ProfileEdits struct {
	FirstName   *string
	SecondName  *string
	DateOfBirth *time.Time
	Email       *string
	Gender      *Gender
	Avatar      *string
}

// Empty reports whether no field was edited.
func (e ProfileEdits) Empty() bool {
	return e.FirstName == nil && e.SecondName == nil && e.DateOfBirth == nil &&
		e.Email == nil && e.Gender == nil && e.Avatar == nil
}

// ApplyTo returns a copy of current with the edits merged in.
func (e ProfileEdits) ApplyTo(current UserRecord) UserRecord {
	merged := current
	if e.FirstName != nil {
		merged.FirstName = *e.FirstName
	}
	if e.SecondName != nil {
		merged.SecondName = *e.SecondName
	}
	if e.DateOfBirth != nil {
		// A zero date clears the stored one.
		if e.DateOfBirth.IsZero() {
			merged.DateOfBirth = nil
		} else {
			dob := *e.DateOfBirth
			merged.DateOfBirth = &dob
		}
	}
	if e.Email != nil {
		merged.Email = *e.Email
	}
	if e.Gender != nil {
		merged.Gender = *e.Gender
	}
	if e.Avatar != nil {
		merged.Avatar = *e.Avatar
	}
	return merged
}

// NormalizeEmail trims surrounding space and lower-cases the address, the form
// the identity gateway stores it in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LocalPart returns the portion of an email address before the first '@'.
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
