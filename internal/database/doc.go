// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go        # Connection setup (sqlite or postgres), migrations
//	├── users/             # Persisted accounts
//	├── books/             # Books and their moderation status
//	├── progress/          # Purchase/view ledger
//	├── readingsessions/   # Start/stop reading intervals
//	├── comments/          # Threaded comment rows
//	└── audit/             # Audit events
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./libris.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	ledger := progress.NewRepository(db.DB)
//
//	book, err := booksRepo.GetByID(12)
//	created, err := ledger.Record("alice", book.ID, entities.ActionTypeBuy)
//
// Repositories return gorm.ErrRecordNotFound unchanged; translating it into
// the services error taxonomy is the caller's job.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in Migrate
//  5. Add compile-time interface check: var _ services.SomeStore = (*Repository)(nil)
package database
