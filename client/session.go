package client

import (
	"context"
	"errors"
	"sync"

	"github.com/Amke0501/Private-Notes-App/internal/models"
)

// ErrNotAuthenticated is returned by Restore when the server holds no valid
// session for this client.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session tracks the current authenticated user for one client, holding it in
// an explicit object instead of package-level state: Restore probes the server
// on startup, Logout clears the state. Inject it into whatever issues
// requests; there is no singleton.
type Session struct {
	client *Client

	mu   sync.RWMutex
	user *models.User
}

func NewSession(client *Client) *Session {
	return &Session{client: client}
}

func (s *Session) Client() *Client {
	return s.client
}

// Restore asks the server whether the cookie jar still holds a valid session
// and, if so, populates the current user.
func (s *Session) Restore(ctx context.Context) error {
	user, err := s.client.Me(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			s.setUser(nil)
			return ErrNotAuthenticated
		}
		return err
	}
	s.setUser(user)
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// Signup registers an account. It does not log in; the caller logs in
// afterwards, matching the server's signup contract.
func (s *Session) Signup(ctx context.Context, email, password string) (*models.User, error) {
	return s.client.Signup(ctx, email, password)
}

func (s *Session) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)
	// Local state clears even if the server call failed; the cookie may be
	// gone or expired already.
	s.setUser(nil)
	return err
}

func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.CurrentUser() != nil
}

func (s *Session) setUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
