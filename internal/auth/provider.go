package auth

import (
	"context"
	"fmt"
)

// ProviderUser is the identity record the provider returns after sign-up or
// sign-in.
type ProviderUser struct {
	UID          string
	Email        string
	DisplayName  string
	IDToken      string
	RefreshToken string
}

// ProviderError carries the provider's machine error code (EMAIL_EXISTS,
// INVALID_PASSWORD, ...) so the session store can map it to a user-facing
// message.
type ProviderError struct {
	Code       string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider error: %s (status %d)", e.Code, e.StatusCode)
}

// IdentityProvider is the contract against the external identity service.
// Session management, password storage and email delivery all live on the
// provider's side.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*ProviderUser, error)
	SignIn(ctx context.Context, email, password string) (*ProviderUser, error)
	UpdateProfile(ctx context.Context, idToken, displayName string) error
	SendPasswordReset(ctx context.Context, email string) error
	RevokeToken(ctx context.Context, refreshToken string) error
}
