package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	LoginWithGoogle(ctx context.Context, idToken string, meta SessionMeta) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID snowflake.ID, req ChangePasswordRequest) error

	// Authenticate resolves a session token to its user, rejecting
	// expired sessions.
	Authenticate(ctx context.Context, token string) (*User, error)
}

type SessionMeta struct {
	UserAgent string
	IP        string
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Meta     SessionMeta
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Meta     SessionMeta
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AuthResult struct {
	User    *User
	Session *Session
}

var (
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidName        = errors.New("invalid_name")
	ErrWeakPassword       = errors.New("weak_password")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrRateLimited is wrapped with the retry-after duration.
	ErrRateLimited = errors.New("rate_limited")
)
