package ports

import "context"

// IdentityGateway issues and verifies account credentials. Adapters return
// *domain.GatewayError for failures the caller may want to inspect.
type IdentityGateway interface {
	CreateAccount(ctx context.Context, email, password string) (accountID string, err error)
	SignIn(ctx context.Context, email, password string) (accountID string, err error)
	// ListSignInMethods returns the sign-in methods registered for email, empty
	// when no account exists.
	ListSignInMethods(ctx context.Context, email string) ([]string, error)
}
