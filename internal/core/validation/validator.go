// Package validation holds the form rules for registration, login and profile
// updates. Every field of a form is checked on each pass; a submission never
// stops at the first failing field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/inmovement/patient-portal/internal/core/domain"
	"github.com/inmovement/patient-portal/internal/core/ports"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

const (
	msgNeedEmail        = "must supply an email address"
	msgPasswordShort    = "password too short"
	msgPasswordMismatch = "passwords do not match"
	msgPasswordRequired = "password is required"
)

type registrationForm struct {
	Username        string `form:"username"        validate:"required,contains=@"`
	Password        string `form:"password"        validate:"min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

type loginForm struct {
	Username string `form:"username" validate:"required,contains=@"`
	Password string `form:"password" validate:"required"`
}

type profileForm struct {
	FirstName   string     `form:"firstName"   validate:"required"`
	SecondName  string     `form:"secondName"  validate:"required"`
	DateOfBirth *time.Time `form:"dateOfBirth" validate:"required"`
	Email       string     `form:"email"       validate:"required"`
	Gender      string     `form:"gender"      validate:"required,ne=unset,oneof=male female other"`
}

// Validator evaluates form rules with go-playground/validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator whose error field names are the form field names.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return &Validator{v: v}
}

// Engine exposes the underlying validator so transport code shares one instance.
func (val *Validator) Engine() *validator.Validate {
	return val.v
}

// Registration checks the sign-up form.
func (val *Validator) Registration(in ports.RegistrationInput) domain.FieldErrorSet {
	form := registrationForm{
		Username:        in.Username,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	}
	return val.run(form, registrationMessage,
		domain.FieldUsername, domain.FieldPassword, domain.FieldConfirmPassword)
}

// Login checks the sign-in form.
func (val *Validator) Login(in ports.LoginInput) domain.FieldErrorSet {
	form := loginForm{Username: in.Username, Password: in.Password}
	return val.run(form, loginMessage, domain.FieldUsername, domain.FieldPassword)
}

// Profile checks the display fields of a merged profile record. The email is
// only checked for presence.
func (val *Validator) Profile(rec domain.UserRecord) domain.FieldErrorSet {
	form := profileForm{
		FirstName:   rec.FirstName,
		SecondName:  rec.SecondName,
		DateOfBirth: rec.DateOfBirth,
		Email:       rec.Email,
		Gender:      string(rec.Gender),
	}
	return val.run(form, profileMessage,
		domain.FieldFirstName, domain.FieldSecondName, domain.FieldDateOfBirth,
		domain.FieldEmail, domain.FieldGender)
}

func (val *Validator) run(form any, msg func(validator.FieldError) string, fields ...string) domain.FieldErrorSet {
	set := make(domain.FieldErrorSet, len(fields))
	for _, f := range fields {
		set[f] = ""
	}

	err := val.v.Struct(form)
	if err == nil {
		return set
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Only reachable when form is not a struct.
		panic(fmt.Sprintf("validation: %v", err))
	}
	for _, fe := range ve {
		set[fe.Field()] = msg(fe)
	}
	return set
}

func registrationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case domain.FieldUsername:
		return msgNeedEmail
	case domain.FieldPassword:
		return msgPasswordShort
	case domain.FieldConfirmPassword:
		return msgPasswordMismatch
	}
	return fallbackMessage(fe)
}

func loginMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case domain.FieldUsername:
		return msgNeedEmail
	case domain.FieldPassword:
		return msgPasswordRequired
	}
	return fallbackMessage(fe)
}

var profileLabels = map[string]string{
	domain.FieldFirstName:   "first name",
	domain.FieldSecondName:  "second name",
	domain.FieldDateOfBirth: "date of birth",
	domain.FieldEmail:       "email",
	domain.FieldGender:      "gender",
}

func profileMessage(fe validator.FieldError) string {
	label := profileLabels[fe.Field()]
	if label == "" {
		return fallbackMessage(fe)
	}
	switch fe.Tag() {
	case "required", "ne":
		return label + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, fe.Param())
	}
	return fallbackMessage(fe)
}

func fallbackMessage(fe validator.FieldError) string {
	return fmt.Sprintf("%s failed validation (%s)", strings.ToLower(fe.Field()), fe.Tag())
}
