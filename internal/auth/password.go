package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/libris/internal/config"
)

var ErrPasswordTooLong = errors.New("password exceeds maximum length of 72 bytes")

// PasswordScheme encodes passwords for storage and checks login attempts
// against the stored value.
type PasswordScheme interface {
	Encode(password string) (string, error)
	Matches(password, stored string) bool
}

// NewPasswordScheme returns the scheme selected by AUTH_PASSWORD_MODE.
func NewPasswordScheme(cfg config.Auth) (PasswordScheme, error) {
	switch cfg.PasswordMode {
	case config.PasswordModePlaintext, "":
		return PlaintextScheme{}, nil
	case config.PasswordModeBcrypt:
		cost := cfg.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
		}
		return BcryptScheme{Cost: cost}, nil
	default:
		return nil, fmt.Errorf("unsupported password mode %q", cfg.PasswordMode)
	}
}

// PlaintextScheme stores passwords as given and compares them exactly.
type PlaintextScheme struct{}

func (PlaintextScheme) Encode(password string) (string, error) {
	return password, nil
}

func (PlaintextScheme) Matches(password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

// BcryptScheme stores bcrypt hashes.
type BcryptScheme struct {
	Cost int
}

func (s BcryptScheme) Encode(password string) (string, error) {
	// bcrypt has a 72-byte limit
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s BcryptScheme) Matches(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
