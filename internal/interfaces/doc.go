// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces (internal/services/interfaces.go)
//
//   - BookStore: books and their moderation status
//   - Ledger: append-only purchase/view entries, one per (user, book, action)
//   - SessionStore: start/stop reading intervals
//   - CommentStore: comment rows, fetched one tree level at a time
//   - UserStore: persisted accounts
//
// ## Authentication Interfaces (internal/auth)
//
//   - UserLookup: credential resolution against persisted accounts
//   - TokenStore: bearer token to username mapping (memory, sqlite or redis)
//   - PasswordScheme: plaintext or bcrypt password storage
//
// # Adding a New Token Store
//
//  1. Implement TokenStore in internal/auth/:
//
//     type MemcachedTokenStore struct {
//         client *memcache.Client
//     }
//
//     func (s *MemcachedTokenStore) Put(ctx context.Context, token, username string) error
//     func (s *MemcachedTokenStore) Get(ctx context.Context, token string) (string, bool, error)
//
//  2. Add a TokenStoreKind constant in internal/config and a case in NewTokenStore.
//
//  3. Add a compile-time check to checks.go.
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface the services need in internal/services/interfaces.go
//
//  4. Add compile-time check:
//
//     var _ services.SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
