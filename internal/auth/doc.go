// Package auth provides authentication and authorization for the API.
//
// # Credentials
//
// Three built-in accounts (admin, creator, user) exist without a database
// row and are checked before persisted users. Persisted users log in with
// their handle, or with their display name when AUTH_LOGIN_BY_NAME is set.
// Passwords are compared as stored unless AUTH_PASSWORD_MODE=bcrypt.
//
// # Tokens
//
// A successful login issues an opaque bearer token (32 random bytes,
// URL-safe base64) that maps to the account's username in a TokenStore.
// Tokens never expire. Available stores:
//
//   - memory: scs memstore, lost on restart (default)
//   - sqlite: scs sqlite3store, persisted in the application database
//   - redis:  go-redis, shared between processes
//
// # Middleware
//
//	authMw := auth.NewMiddleware(authService)
//	user := router.Group("/user", authMw.RequireAuth())
//	admin := router.Group("/admin", authMw.RequireAuth(), authMw.RequireRole(entities.UserRoleAdmin))
//
// RequireRole is an exact match: admin does not satisfy a creator check.
// Handlers read the caller with GetIdentity.
package auth
