package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/entities"
)

// AccessService decides who may see and read a book, and records purchases.
type AccessService struct {
	books  BookStore
	ledger Ledger
}

func NewAccessService(books BookStore, ledger Ledger) *AccessService {
	return &AccessService{books: books, ledger: ledger}
}

// VisibleBook loads a book the caller is allowed to know about.
// Unapproved books exist only for admins and their owner.
func (s *AccessService) VisibleBook(identity *auth.Identity, bookID uint) (*entities.Book, error) {
	book, err := s.books.GetByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}

	if book.Status != entities.BookStatusApproved &&
		identity.Role != entities.UserRoleAdmin &&
		identity.Username != book.CreatorID {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// CanRead returns nil when identity may read the book's content.
// Premium books need a purchase unless the caller is an admin or the book's creator.
func (s *AccessService) CanRead(identity *auth.Identity, book *entities.Book) error {
	if !book.IsPremium {
		return nil
	}
	if identity.Role == entities.UserRoleAdmin || identity.Username == book.CreatorID {
		return nil
	}

	bought, err := s.ledger.Exists(identity.Username, book.ID, entities.ActionTypeBuy)
	if err != nil {
		return fmt.Errorf("failed to check purchase: %w", err)
	}
	if !bought {
		return ErrBookPaymentRequired
	}
	return nil
}

// Pay records a purchase. Returns false when the book was already bought.
func (s *AccessService) Pay(identity *auth.Identity, bookID uint) (bool, error) {
	book, err := s.VisibleBook(identity, bookID)
	if err != nil {
		return false, err
	}

	created, err := s.ledger.Record(identity.Username, book.ID, entities.ActionTypeBuy)
	if err != nil {
		return false, fmt.Errorf("failed to record purchase: %w", err)
	}
	return created, nil
}
