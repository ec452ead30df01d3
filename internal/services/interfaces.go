package services

import (
	"time"

	"github.com/mrlokans/libris/internal/entities"
)

// BookStore is the Content Repository.
type BookStore interface {
	Create(book *entities.Book) error
	Update(book *entities.Book) error
	GetByID(id uint) (*entities.Book, error)
	GetByIDs(ids []uint) ([]entities.Book, error)
	UpdateStatus(id uint, status entities.BookStatus) error
	Delete(id uint) error
	List() ([]entities.Book, error)
	ListByStatus(status entities.BookStatus) ([]entities.Book, error)
	ListByCreator(creatorID string) ([]entities.Book, error)
	Count() (int64, error)
	CountByStatus(status entities.BookStatus) (int64, error)
}

// Ledger is the append-only purchase/view log.
type Ledger interface {
	// Record returns false when the entry already existed.
	Record(username string, bookID uint, action entities.ActionType) (bool, error)
	Exists(username string, bookID uint, action entities.ActionType) (bool, error)
	ListByAction(username string, action entities.ActionType) ([]entities.ProgressEntry, error)
	CountByAction(username string, action entities.ActionType) (int64, error)
}

// SessionStore persists reading sessions.
type SessionStore interface {
	Start(username string, bookID uint, startedAt time.Time) (*entities.ReadingSession, error)
	LatestOpen(username string, bookID uint) (*entities.ReadingSession, error)
	Close(id uint, endedAt time.Time, durationSeconds int) error
	ListByUser(username string) ([]entities.ReadingSession, error)
	Recent(username string, limit int) ([]entities.ReadingSession, error)
}

// CommentStore persists comment rows.
type CommentStore interface {
	Create(comment *entities.Comment) error
	GetByID(id uint) (*entities.Comment, error)
	ListTopLevel(bookID uint) ([]entities.Comment, error)
	ListByParents(parentIDs []uint) ([]entities.Comment, error)
}

// UserStore is the persisted user table.
type UserStore interface {
	Create(user *entities.User) error
	GetByHandle(handle string) (*entities.User, error)
	ExistsByHandleOrEmail(handle, email string) (bool, error)
	List() ([]entities.User, error)
	Count() (int64, error)
	NamesByHandles(handles []string) (map[string]string, error)
}
