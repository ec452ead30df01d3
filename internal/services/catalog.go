package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/entities"
)

// BookInput is the editable part of a book.
type BookInput struct {
	Title     string
	Author    string
	Content   string
	Theme     *string
	Price     float64
	IsPremium bool
}

func (in BookInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return newError(ErrInvalidInput, "title is required")
	}
	if strings.TrimSpace(in.Author) == "" {
		return newError(ErrInvalidInput, "author is required")
	}
	if in.Price < 0 {
		return newError(ErrInvalidInput, "price must not be negative")
	}
	return nil
}

// CreatorStats counts a creator's books per moderation status.
type CreatorStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type CreatorSummary struct {
	Stats CreatorStats    `json:"stats"`
	Books []entities.Book `json:"books"`
}

// BookListing is a catalogue entry without the book's content.
type BookListing struct {
	ID        uint                `json:"id"`
	Title     string              `json:"title"`
	Author    string              `json:"author"`
	Theme     *string             `json:"theme"`
	Price     float64             `json:"price"`
	IsPremium bool                `json:"is_premium"`
	Status    entities.BookStatus `json:"status"`
	CreatorID string              `json:"creator_id"`
	CreatedAt time.Time           `json:"created_at"`
}

// CatalogService publishes books and serves them to readers.
type CatalogService struct {
	books  BookStore
	access *AccessService
}

func NewCatalogService(books BookStore, access *AccessService) *CatalogService {
	return &CatalogService{books: books, access: access}
}

// CreateBook stores a new book owned by the caller. New books always start pending.
func (s *CatalogService) CreateBook(identity *auth.Identity, in BookInput) (*entities.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:     in.Title,
		Author:    in.Author,
		Theme:     in.Theme,
		Content:   in.Content,
		Price:     in.Price,
		IsPremium: in.IsPremium,
		Status:    entities.BookStatusPending,
		CreatorID: identity.Username,
	}
	if err := s.books.Create(book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// UpdateBook edits a book owned by the caller and sends it back to moderation.
// Editing someone else's book is forbidden whatever its status.
// A nil Theme keeps the current theme.
func (s *CatalogService) UpdateBook(identity *auth.Identity, bookID uint, in BookInput) (*entities.Book, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	book, err := s.books.GetByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book %d: %w", bookID, err)
	}
	if book.CreatorID != identity.Username {
		return nil, ErrNotBookOwner
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Content = in.Content
	book.Price = in.Price
	book.IsPremium = in.IsPremium
	if in.Theme != nil {
		book.Theme = in.Theme
	}
	book.Status = entities.BookStatusPending

	if err := s.books.Update(book); err != nil {
		return nil, fmt.Errorf("failed to update book %d: %w", bookID, err)
	}
	return book, nil
}

// GetBook returns a book with its content if the caller may read it.
func (s *CatalogService) GetBook(identity *auth.Identity, bookID uint) (*entities.Book, error) {
	book, err := s.access.VisibleBook(identity, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanRead(identity, book); err != nil {
		return nil, err
	}
	return book, nil
}

// ListApproved returns the books ordinary readers can browse.
// Content is only served by GetBook, where premium gating applies.
func (s *CatalogService) ListApproved() ([]BookListing, error) {
	books, err := s.books.ListByStatus(entities.BookStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	listings := make([]BookListing, 0, len(books))
	for _, b := range books {
		listings = append(listings, BookListing{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Theme:     b.Theme,
			Price:     b.Price,
			IsPremium: b.IsPremium,
			Status:    b.Status,
			CreatorID: b.CreatorID,
			CreatedAt: b.CreatedAt,
		})
	}
	return listings, nil
}

// CreatorSummary returns the caller's own books, unfiltered, with per-status counts.
func (s *CatalogService) CreatorSummary(identity *auth.Identity) (*CreatorSummary, error) {
	if identity.Role != entities.UserRoleCreator {
		return nil, newError(ErrForbidden, "not authorized")
	}

	books, err := s.books.ListByCreator(identity.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list creator books: %w", err)
	}

	summary := &CreatorSummary{Books: books}
	summary.Stats.Total = len(books)
	for _, b := range books {
		switch b.Status {
		case entities.BookStatusPending:
			summary.Stats.Pending++
		case entities.BookStatusApproved:
			summary.Stats.Approved++
		case entities.BookStatusRejected:
			summary.Stats.Rejected++
		}
	}
	return summary, nil
}
