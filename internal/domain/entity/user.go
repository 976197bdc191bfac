package entity

import (
	"time"
)

// User is the identity of an authenticated client
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthState is the persisted authentication state of one client.
// IsAuthenticated is true iff Token is set.
type AuthState struct {
	User            *User   `json:"user"`
	Token           *string `json:"token"`
	IsAuthenticated bool    `json:"isAuthenticated"`
}

// NewAuthState returns an authenticated state for user and token
func NewAuthState(user User, token string) AuthState {
	return AuthState{
		User:            &user,
		Token:           &token,
		IsAuthenticated: true,
	}
}

// HasToken checks whether token is the current session token
func (s AuthState) HasToken(token string) bool {
	return s.IsAuthenticated && s.Token != nil && *s.Token == token
}

// Normalize restores the IsAuthenticated/Token invariant on rehydrated data.
func (s AuthState) Normalize() AuthState {
	if s.Token == nil || *s.Token == "" {
		return AuthState{}
	}
	s.IsAuthenticated = true
	return s
}
