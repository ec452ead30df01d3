package auth

import (
	"crypto/subtle"

	"github.com/mrlokans/libris/internal/entities"
)

// Identity is the resolved caller of a request.
type Identity struct {
	Username string            `json:"username"`
	Role     entities.UserRole `json:"role"`
	Name     string            `json:"name"`
}

// IsBuiltin reports whether the identity belongs to a built-in account.
func (i *Identity) IsBuiltin() bool {
	_, ok := builtinAccounts[i.Username]
	return ok
}

type builtinAccount struct {
	password string
	role     entities.UserRole
}

var builtinAccounts = map[string]builtinAccount{
	"admin":   {password: "admin", role: entities.UserRoleAdmin},
	"creator": {password: "creator", role: entities.UserRoleCreator},
	"user":    {password: "user", role: entities.UserRoleUser},
}

// builtinIdentity returns the identity of a built-in account by name.
func builtinIdentity(username string) (*Identity, bool) {
	account, ok := builtinAccounts[username]
	if !ok {
		return nil, false
	}
	return &Identity{Username: username, Role: account.role, Name: username}, true
}

// checkBuiltin returns the built-in identity when both name and password match.
func checkBuiltin(username, password string) (*Identity, bool) {
	account, ok := builtinAccounts[username]
	if !ok {
		return nil, false
	}
	if subtle.ConstantTimeCompare([]byte(account.password), []byte(password)) != 1 {
		return nil, false
	}
	return builtinIdentity(username)
}

// IsBuiltinUsername reports whether username is reserved by a built-in account.
func IsBuiltinUsername(username string) bool {
	_, ok := builtinAccounts[username]
	return ok
}
