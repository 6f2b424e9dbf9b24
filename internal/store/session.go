package store

import (
	"fmt"

	"golang.org/x/oauth2"
)

// Session owns the bearer token: persisted in the local store under
// [KeyToken], attached to outgoing requests by the gateway. An absent token
// means anonymous requests.
type Session struct {
	local *LocalStore
}

// NewSession creates a session over the given local store.
func NewSession(local *LocalStore) *Session {
	return &Session{local: local}
}

// AccessToken implements the gateway's token provider. It returns nil when
// no token is stored or the store is unreadable; an unreadable store
// degrades to anonymous requests rather than failing the call.
func (s *Session) AccessToken() *oauth2.Token {
	value, ok, err := s.local.Get(KeyToken)
	if err != nil || !ok || value == "" {
		return nil
	}
	return &oauth2.Token{AccessToken: value, TokenType: "bearer"}
}

// SetToken persists the issued token.
func (s *Session) SetToken(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("refusing to store an empty token")
	}
	return s.local.Set(KeyToken, token.AccessToken)
}

// Clear removes the stored token.
func (s *Session) Clear() error {
	return s.local.Delete(KeyToken)
}

// Authenticated reports whether a token is currently stored.
func (s *Session) Authenticated() bool {
	return s.AccessToken() != nil
}
