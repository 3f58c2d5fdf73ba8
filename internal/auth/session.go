package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Jabarteley/CitizensReportApp-ionic/internal/apperrors"
	"github.com/Jabarteley/CitizensReportApp-ionic/internal/logger"
	model "github.com/Jabarteley/CitizensReportApp-ionic/internal/models"
)

// LoginRoute is where Logout sends the navigator.
const LoginRoute = "/login"

// Navigator is the presentation layer's navigation hook.
type Navigator func(route string)

// SessionStore wraps the identity provider and holds the current session. The
// authenticated user is a single shared value broadcast to every subscriber;
// there is exactly one source, never per-subscriber polling.
type SessionStore struct {
	provider IdentityProvider
	navigate Navigator

	mu           sync.RWMutex
	current      *model.User
	idToken      string
	refreshToken string
	subs         map[int]chan *model.User
	nextID       int
}

// Option configures a SessionStore.
type Option func(*SessionStore)

// WithNavigator installs the navigation hook invoked on logout.
func WithNavigator(n Navigator) Option {
	return func(s *SessionStore) { s.navigate = n }
}

func NewSessionStore(provider IdentityProvider, opts ...Option) *SessionStore {
	s := &SessionStore{
		provider: provider,
		subs:     make(map[int]chan *model.User),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new identity. When displayName is non-empty it is
// attached to the provider profile before the session is established.
func (s *SessionStore) Register(ctx context.Context, email, password, displayName string) (*model.User, error) {
	pu, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, mapAuthError(err)
	}

	if displayName != "" {
		if err := s.provider.UpdateProfile(ctx, pu.IDToken, displayName); err != nil {
			return nil, mapAuthError(err)
		}
		pu.DisplayName = displayName
	}

	user := s.establish(pu)
	logger.Success("Registered %s", user.Email)
	return user, nil
}

// Login establishes a session for an existing identity.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*model.User, error) {
	pu, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, mapAuthError(err)
	}

	user := s.establish(pu)
	logger.Success("Logged in %s", user.Email)
	return user, nil
}

// Logout revokes the session with the provider, clears the current user and
// navigates to the login view.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken != "" {
		if err := s.provider.RevokeToken(ctx, refreshToken); err != nil {
			logger.Error("Logout failed: %v", err)
			return apperrors.NewAuthError("LOGOUT_FAILED", "Logout failed")
		}
	}

	s.mu.Lock()
	s.current = nil
	s.idToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
	s.broadcast(nil)

	if s.navigate != nil {
		s.navigate(LoginRoute)
	}

	return nil
}

// ResetPassword triggers the provider's password-reset email flow.
func (s *SessionStore) ResetPassword(ctx context.Context, email string) error {
	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		return mapAuthError(err)
	}
	return nil
}

// CurrentUser returns a snapshot of the authenticated user, or nil when no
// session exists.
func (s *SessionStore) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// CurrentUserID returns the authenticated user's id, or "" when logged out.
func (s *SessionStore) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.UID
}

// IsAuthenticated reports whether a user is currently known. It is a
// synchronous snapshot of the latest broadcast value, not a network check.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Subscribe returns a channel that delivers the current user immediately and
// then every session change until cancel is called. All subscribers are fed
// from the same underlying session value; a subscriber that falls behind
// observes the latest value rather than blocking the store.
func (s *SessionStore) Subscribe() (<-chan *model.User, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan *model.User, 8)
	ch <- cloneUser(s.current)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

func (s *SessionStore) establish(pu *ProviderUser) *model.User {
	user := &model.User{
		UID:         pu.UID,
		Email:       pu.Email,
		DisplayName: pu.DisplayName,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.current = user
	s.idToken = pu.IDToken
	s.refreshToken = pu.RefreshToken
	s.mu.Unlock()

	s.broadcast(user)

	u := *user
	return &u
}

func (s *SessionStore) broadcast(user *model.User) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		u := cloneUser(user)
		select {
		case ch <- u:
		default:
			// drop the oldest pending value so laggards converge on the latest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// mapAuthError converts a provider error into the fixed user-facing AuthError
// for its code.
func mapAuthError(err error) error {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return apperrors.NewAuthError("UNKNOWN", "An error occurred")
	}

	var message string
	switch pe.Code {
	case "EMAIL_EXISTS":
		message = "Email is already in use"
	case "INVALID_EMAIL":
		message = "Invalid email address"
	case "OPERATION_NOT_ALLOWED":
		message = "Operation not allowed"
	case "WEAK_PASSWORD":
		message = "Password is too weak"
	case "USER_DISABLED":
		message = "User account is disabled"
	case "EMAIL_NOT_FOUND":
		message = "No account found with this email"
	case "INVALID_PASSWORD":
		message = "Incorrect password"
	default:
		message = "An error occurred"
	}

	return apperrors.NewAuthError(pe.Code, message)
}
