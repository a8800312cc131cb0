package domain

// Form field names, shared by the validator and the HTTP layer.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldFirstName       = "firstName"
	FieldSecondName      = "secondName"
	FieldDateOfBirth     = "dateOfBirth"
	FieldEmail           = "email"
	FieldGender          = "gender"
)

// FieldErrorSet maps every validated field to its message. An empty message
// means the field passed.
type FieldErrorSet map[string]string

// OK reports whether every field passed.
func (s FieldErrorSet) OK() bool {
	for _, msg := range s {
		if msg != "" {
			return false
		}
	}
	return true
}

// Failed returns only the fields that carry a message.
func (s FieldErrorSet) Failed() map[string]string {
	out := make(map[string]string)
	for field, msg := range s {
		if msg != "" {
			out[field] = msg
		}
	}
	return out
}
