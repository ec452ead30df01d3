package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/entities"
)

// previewRunes is how much book content the admin list shows.
const previewRunes = 100

type AdminStats struct {
	TotalBooks   int64 `json:"total_books"`
	PendingBooks int64 `json:"pending_books"`
	TotalUsers   int64 `json:"total_users"`
}

// BookPreview is a book in the admin list, with truncated content.
type BookPreview struct {
	ID        uint                `json:"id"`
	Title     string              `json:"title"`
	Author    string              `json:"author"`
	Price     float64             `json:"price"`
	IsPremium bool                `json:"is_premium"`
	Status    entities.BookStatus `json:"status"`
	CreatorID string              `json:"creator_id"`
	Content   string              `json:"content"`
}

// UserSummary is a persisted user as admins see it.
type UserSummary struct {
	UserID      string            `json:"user_id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phone_number"`
	Role        entities.UserRole `json:"role"`
}

// AdminService implements moderation and platform statistics.
type AdminService struct {
	books BookStore
	users UserStore
}

func NewAdminService(books BookStore, users UserStore) *AdminService {
	return &AdminService{books: books, users: users}
}

func (s *AdminService) Summary() (*AdminStats, error) {
	totalBooks, err := s.books.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count books: %w", err)
	}
	pendingBooks, err := s.books.CountByStatus(entities.BookStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending books: %w", err)
	}
	totalUsers, err := s.users.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	return &AdminStats{
		TotalBooks:   totalBooks,
		PendingBooks: pendingBooks,
		TotalUsers:   totalUsers,
	}, nil
}

func (s *AdminService) Users() ([]UserSummary, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{
			UserID:      u.Handle,
			Name:        u.Name,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			Role:        u.Role,
		})
	}
	return out, nil
}

// Books lists every book regardless of status.
func (s *AdminService) Books() ([]BookPreview, error) {
	books, err := s.books.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	out := make([]BookPreview, 0, len(books))
	for _, b := range books {
		out = append(out, BookPreview{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Price:     b.Price,
			IsPremium: b.IsPremium,
			Status:    b.Status,
			CreatorID: b.CreatorID,
			Content:   preview(b.Content, previewRunes),
		})
	}
	return out, nil
}

func (s *AdminService) Approve(bookID uint) error {
	return s.setStatus(bookID, entities.BookStatusApproved)
}

func (s *AdminService) Reject(bookID uint) error {
	return s.setStatus(bookID, entities.BookStatusRejected)
}

// Delete removes a book permanently.
func (s *AdminService) Delete(bookID uint) error {
	if err := s.books.Delete(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to delete book %d: %w", bookID, err)
	}
	return nil
}

func (s *AdminService) setStatus(bookID uint, status entities.BookStatus) error {
	if err := s.books.UpdateStatus(bookID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to set book %d to %s: %w", bookID, status, err)
	}
	return nil
}

// preview cuts s to at most n runes, marking the cut with "...".
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
