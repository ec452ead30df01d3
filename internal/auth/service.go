package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/config"
	"github.com/mrlokans/libris/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("wrong credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAccountNotFound    = errors.New("user not found")
)

// tokenBytes is the entropy of an issued token.
const tokenBytes = 32

// UserLookup is the read side of the persisted user table.
type UserLookup interface {
	GetByHandle(handle string) (*entities.User, error)
	GetByHandleOrName(login string) (*entities.User, error)
}

// Service authenticates credentials and resolves bearer tokens.
type Service struct {
	users       UserLookup
	tokens      TokenStore
	passwords   PasswordScheme
	loginByName bool
}

// NewService creates a new authentication service.
func NewService(users UserLookup, tokens TokenStore, passwords PasswordScheme, cfg config.Auth) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		passwords:   passwords,
		loginByName: cfg.LoginByName,
	}
}

// Authenticate checks a username/password pair.
// Built-in accounts are tried first; a built-in name with a wrong password
// still falls through to the persisted users.
func (s *Service) Authenticate(username, password string) (*Identity, error) {
	if identity, ok := checkBuiltin(username, password); ok {
		return identity, nil
	}

	lookup := s.users.GetByHandle
	if s.loginByName {
		lookup = s.users.GetByHandleOrName
	}

	user, err := lookup(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.passwords.Matches(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return identityFromUser(user), nil
}

// IssueToken generates a new bearer token for identity and registers it.
func (s *Service) IssueToken(ctx context.Context, identity *Identity) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.tokens.Put(ctx, token, identity.Username); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Resolve returns the identity a token was issued to.
// Missing and unknown tokens both yield ErrUnauthenticated; only the log tells them apart.
func (s *Service) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		log.Printf("Rejected request: no bearer token supplied")
		return nil, ErrUnauthenticated
	}

	username, found, err := s.tokens.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if !found {
		log.Printf("Rejected request: bearer token not issued by this registry")
		return nil, ErrUnauthenticated
	}

	identity, err := s.LookupAccount(username)
	if errors.Is(err, ErrAccountNotFound) {
		log.Printf("Rejected request: token owner %q no longer exists", username)
	}
	return identity, err
}

// LookupAccount resolves a username to a built-in or persisted account.
func (s *Service) LookupAccount(username string) (*Identity, error) {
	if identity, ok := builtinIdentity(username); ok {
		return identity, nil
	}

	user, err := s.users.GetByHandle(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return identityFromUser(user), nil
}

func identityFromUser(user *entities.User) *Identity {
	return &Identity{Username: user.Handle, Role: user.Role, Name: user.Name}
}

// generateToken creates a cryptographically secure URL-safe token.
func generateToken() (string, error) {
	bytes := make([]byte, tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
