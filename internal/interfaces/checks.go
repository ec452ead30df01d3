package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/database/books"
	"github.com/mrlokans/libris/internal/database/comments"
	"github.com/mrlokans/libris/internal/database/progress"
	"github.com/mrlokans/libris/internal/database/readingsessions"
	"github.com/mrlokans/libris/internal/database/users"
	"github.com/mrlokans/libris/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookStore = (*books.Repository)(nil)
var _ services.Ledger = (*progress.Repository)(nil)
var _ services.SessionStore = (*readingsessions.Repository)(nil)
var _ services.CommentStore = (*comments.Repository)(nil)
var _ services.UserStore = (*users.Repository)(nil)

// =============================================================================
// Authentication
// =============================================================================

var _ auth.UserLookup = (*users.Repository)(nil)

var _ auth.TokenStore = (*auth.ScsTokenStore)(nil)
var _ auth.TokenStore = (*auth.RedisTokenStore)(nil)

var _ auth.PasswordScheme = auth.PlaintextScheme{}
var _ auth.PasswordScheme = auth.BcryptScheme{}
