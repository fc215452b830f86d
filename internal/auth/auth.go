// Package auth authenticates credentials and issues bearer tokens.
//
// The flow is: look the identifier up in the user store, verify the
// presented password against the stored hash, and on success hand the
// resulting identity to the token issuer. Both a store miss and a hash
// mismatch collapse into ErrInvalidCredentials so callers cannot probe
// which identifiers exist.
package auth

import (
	"context"
	"errors"

	"github.com/skillsenselab/authservice/internal/logger"
	"github.com/skillsenselab/authservice/internal/password"
	"github.com/skillsenselab/authservice/internal/token"
)

// ErrInvalidCredentials is the single failure surfaced for a failed
// login, regardless of whether the identifier was unknown or the
// password was wrong.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Identity is an authenticated principal: who logged in and with which role.
type Identity struct {
	Email string
	Role  Role
}

// Credential is the stored record the authenticator checks against.
type Credential struct {
	Email        string
	PasswordHash string
	Role         string
}

// UserStore looks up stored credentials by identifier. Implementations
// return ErrCredentialNotFound when no record matches; the service never
// exposes that distinction to callers.
type UserStore interface {
	FindCredential(ctx context.Context, email string) (*Credential, error)
}

// ErrCredentialNotFound is returned by UserStore implementations when
// no record matches the identifier.
var ErrCredentialNotFound = errors.New("auth: credential not found")

// LoginResult is what a successful login returns to the client.
type LoginResult struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	Role  string `json:"role"`
}

// Service orchestrates credential verification and token issuance.
type Service struct {
	store  UserStore
	hasher password.Hasher
	issuer *token.Issuer
	log    *logger.Logger
}

// NewService creates an authentication service.
func NewService(store UserStore, hasher password.Hasher, issuer *token.Issuer, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		issuer: issuer,
		log:    log.WithComponent("auth"),
	}
}

// Authenticate verifies an email/password pair and returns the identity
// on success. Unknown email and wrong password are indistinguishable
// from the caller's side; the internal reason is logged at debug level
// only.
func (s *Service) Authenticate(ctx context.Context, email, plaintext string) (*Identity, error) {
	cred, err := s.store.FindCredential(ctx, email)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			s.log.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Verify(plaintext, cred.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.log.Debug("login attempt with wrong password")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	role, err := ParseRole(cred.Role)
	if err != nil {
		// A stored record with an unrecognized role never authenticates.
		s.log.Warn("stored credential carries unknown role", map[string]interface{}{
			"role": cred.Role,
		})
		return nil, ErrInvalidCredentials
	}

	return &Identity{Email: cred.Email, Role: role}, nil
}

// Login authenticates the credentials and issues a signed bearer token
// for the resulting identity.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*LoginResult, error) {
	identity, err := s.Authenticate(ctx, email, plaintext)
	if err != nil {
		return nil, err
	}

	signed, err := s.issuer.Issue(identity.Email, string(identity.Role))
	if err != nil {
		return nil, err
	}

	s.log.Info("login succeeded", map[string]interface{}{
		"role": string(identity.Role),
	})

	return &LoginResult{Token: signed, Type: "Bearer", Role: string(identity.Role)}, nil
}
