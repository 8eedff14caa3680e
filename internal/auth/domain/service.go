package domain

import (
	"context"
	"errors"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, *Session, error)
	Login(ctx context.Context, req LoginRequest) (*User, *Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*User, error)
}

type RegisterRequest struct {
	Email    string
	Name     string
	Password string
}

type LoginRequest struct {
	Email    string
	Password string
}

var (
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrWeakPassword       = errors.New("password_too_short")
	ErrEmailTaken         = errors.New("email_already_registered")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)
