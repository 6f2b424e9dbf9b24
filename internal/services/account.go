// Account endpoints: registration, login, profile management
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
	"golang.org/x/oauth2"
)

const (
	minPasswordLength = 6
	maxAvatarLength   = 5_000_000
)

// User represents the authenticated user's profile as served by /me.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	IsActive     bool   `json:"is_active"`
	AvatarBase64 string `json:"avatar_base64"`
	Role         *Role  `json:"role"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Role is the access role attached to a user profile.
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AccountService wraps the session endpoints of the backend.
type AccountService struct {
	client *Client
}

// NewAccountService creates an account service over the given gateway.
func NewAccountService(client *Client) *AccountService {
	return &AccountService{client: client}
}

// Register creates a new user. The password/confirm comparison happens here,
// before any network call; a mismatch never reaches the backend.
func (s *AccountService) Register(ctx context.Context, username, email, password, confirm string) error {
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", shared.ErrValidation)
	}
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", shared.ErrValidation)
	}

	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	return s.client.Do(ctx, http.MethodPost, "/register", payload, nil)
}

// Login exchanges credentials for a bearer token. Both fields must be
// non-empty; the check is client-side and skips the network call entirely.
func (s *AccountService) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrValidation)
	}

	payload := map[string]string{
		"username": username,
		"password": password,
	}

	// The login response {access_token, token_type} is the oauth2 token
	// wire shape.
	var token oauth2.Token
	if err := s.client.Do(ctx, http.MethodPost, "/login", payload, &token); err != nil {
		return nil, err
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: response carried no access token", shared.ErrAuthFailed)
	}

	return &token, nil
}

// Me retrieves the current user's profile.
func (s *AccountService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.Do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword updates the current user's password.
func (s *AccountService) ChangePassword(ctx context.Context, current, updated string) error {
	if len(updated) < minPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", shared.ErrValidation, minPasswordLength)
	}

	payload := map[string]string{
		"current_password": current,
		"new_password":     updated,
	}

	return s.client.Do(ctx, http.MethodPut, "/me/password", payload, nil)
}

// UpdateAvatar replaces the current user's avatar with a base64 payload.
func (s *AccountService) UpdateAvatar(ctx context.Context, avatarBase64 string) (*User, error) {
	if avatarBase64 == "" || len(avatarBase64) > maxAvatarLength {
		return nil, fmt.Errorf("%w: avatar payload is empty or too large", shared.ErrValidation)
	}

	var user User
	payload := map[string]string{"avatar_base64": avatarBase64}
	if err := s.client.Do(ctx, http.MethodPut, "/me/avatar", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
