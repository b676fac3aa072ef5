// Package auth provides the storefront's mocked sign-in. No credentials are
// checked against a backend; any well-formed email and password succeed.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/foodie-express/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("email and password are required")
)

// SignUpRequest carries the optional profile fields of a new account
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Authenticator issues mock customer accounts
type Authenticator struct{}

// NewAuthenticator creates a new authenticator
func NewAuthenticator() *Authenticator {
	return &Authenticator{}
}

// SignIn returns a customer account for email
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	return a.SignUp(ctx, SignUpRequest{Email: email, Password: password})
}

// SignUp returns a customer account built from req. The display name
// defaults to the local part of the email.
func (a *Authenticator) SignUp(ctx context.Context, req SignUpRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = email[:at]
	}

	return &models.User{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   email,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    models.RoleCustomer,
	}, nil
}
