package domain

// Session is the caller's authenticated identity. It is passed explicitly to every
// operation that is scoped to an account.
type Session struct {
	AccountID string
	Email     string
}

// Authenticated reports whether s identifies an account.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccountID != ""
}
