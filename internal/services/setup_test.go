package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/database"
	bookRepo "github.com/mrlokans/libris/internal/database/books"
	commentRepo "github.com/mrlokans/libris/internal/database/comments"
	progressRepo "github.com/mrlokans/libris/internal/database/progress"
	sessionRepo "github.com/mrlokans/libris/internal/database/readingsessions"
	userRepo "github.com/mrlokans/libris/internal/database/users"
	"github.com/mrlokans/libris/internal/entities"
)

var (
	adminIdentity   = &auth.Identity{Username: "admin", Role: entities.UserRoleAdmin, Name: "admin"}
	creatorIdentity = &auth.Identity{Username: "creator", Role: entities.UserRoleCreator, Name: "creator"}
	readerIdentity  = &auth.Identity{Username: "user", Role: entities.UserRoleUser, Name: "user"}
	otherCreator    = &auth.Identity{Username: "h-creator-2", Role: entities.UserRoleCreator, Name: "Kim"}
)

type testEnv struct {
	db       *gorm.DB
	books    *bookRepo.Repository
	ledger   *progressRepo.Repository
	sessions *sessionRepo.Repository
	comments *commentRepo.Repository
	users    *userRepo.Repository

	access       *AccessService
	catalog      *CatalogService
	reading      *ReadingService
	commentSvc   *CommentService
	admin        *AdminService
	registration *RegistrationService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:       db,
		books:    bookRepo.NewRepository(db),
		ledger:   progressRepo.NewRepository(db),
		sessions: sessionRepo.NewRepository(db),
		comments: commentRepo.NewRepository(db),
		users:    userRepo.NewRepository(db),
	}
	env.access = NewAccessService(env.books, env.ledger)
	env.catalog = NewCatalogService(env.books, env.access)
	env.reading = NewReadingService(env.access, env.books, env.ledger, env.sessions, env.users)
	env.commentSvc = NewCommentService(env.comments, env.books, env.users, 0)
	env.admin = NewAdminService(env.books, env.users)
	env.registration = NewRegistrationService(env.users, auth.PlaintextScheme{})
	return env
}

// createBook publishes a book as owner and moves it to status.
func (env *testEnv) createBook(t *testing.T, owner *auth.Identity, title string, premium bool, status entities.BookStatus) *entities.Book {
	t.Helper()
	book, err := env.catalog.CreateBook(owner, BookInput{
		Title:     title,
		Author:    "Author",
		Content:   "content of " + title,
		Price:     10,
		IsPremium: premium,
	})
	require.NoError(t, err)
	if status != entities.BookStatusPending {
		require.NoError(t, env.books.UpdateStatus(book.ID, status))
		book.Status = status
	}
	return book
}

func (env *testEnv) createUser(t *testing.T, handle, name string, role entities.UserRole) *entities.User {
	t.Helper()
	user, err := env.registration.CreateUser(RegisterInput{
		Handle:   handle,
		Name:     name,
		Email:    handle + "@example.com",
		Password: "pw",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
