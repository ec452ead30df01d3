package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/entities"
)

// recentSessionsLimit is how many sessions the dashboard lists.
const recentSessionsLimit = 10

// RecentSession is a reading session joined with its book.
type RecentSession struct {
	BookID          uint       `json:"book_id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	DurationSeconds int        `json:"duration_seconds"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
}

// Dashboard is a reader's purchase and reading statistics.
type Dashboard struct {
	Name                string          `json:"name"`
	TotalPurchased      int             `json:"total_purchased"`
	PurchasedBooks      []entities.Book `json:"purchased_books"`
	TotalViewed         int64           `json:"total_viewed"`
	TotalReadingSeconds int             `json:"total_reading_seconds"`
	TodayReadingSeconds int             `json:"today_reading_seconds"`
	RecentReading       []RecentSession `json:"recent_reading"`
}

// ReadingService tracks reading sessions and builds the reader dashboard.
type ReadingService struct {
	access   *AccessService
	books    BookStore
	ledger   Ledger
	sessions SessionStore
	users    UserStore
	now      func() time.Time
}

func NewReadingService(access *AccessService, books BookStore, ledger Ledger, sessions SessionStore, users UserStore) *ReadingService {
	return &ReadingService{
		access:   access,
		books:    books,
		ledger:   ledger,
		sessions: sessions,
		users:    users,
		now:      time.Now,
	}
}

// StartReading opens a new session. The first start for a book also records a view.
// Earlier open sessions for the same book are left open.
func (s *ReadingService) StartReading(identity *auth.Identity, bookID uint) error {
	book, err := s.access.VisibleBook(identity, bookID)
	if err != nil {
		return err
	}

	if _, err := s.ledger.Record(identity.Username, book.ID, entities.ActionTypeRead); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	if _, err := s.sessions.Start(identity.Username, book.ID, s.now()); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	return nil
}

// StopReading closes the most recently started open session with the
// client-reported duration. Returns false when no session was open.
func (s *ReadingService) StopReading(identity *auth.Identity, bookID uint, durationSeconds int) (bool, error) {
	if durationSeconds < 0 {
		return false, newError(ErrInvalidInput, "duration_seconds must not be negative")
	}

	session, err := s.sessions.LatestOpen(identity.Username, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find open session: %w", err)
	}

	if err := s.sessions.Close(session.ID, s.now(), durationSeconds); err != nil {
		return false, fmt.Errorf("failed to close session %d: %w", session.ID, err)
	}
	return true, nil
}

// Dashboard aggregates the caller's purchases, views and reading time.
// "Today" is the server-local calendar day.
func (s *ReadingService) Dashboard(identity *auth.Identity) (*Dashboard, error) {
	name, err := s.displayName(identity)
	if err != nil {
		return nil, err
	}

	purchases, err := s.ledger.ListByAction(identity.Username, entities.ActionTypeBuy)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	purchasedIDs := make([]uint, 0, len(purchases))
	for _, p := range purchases {
		purchasedIDs = append(purchasedIDs, p.BookID)
	}
	purchasedBooks, err := s.books.GetByIDs(purchasedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchased books: %w", err)
	}

	viewed, err := s.ledger.CountByAction(identity.Username, entities.ActionTypeRead)
	if err != nil {
		return nil, fmt.Errorf("failed to count views: %w", err)
	}

	sessions, err := s.sessions.ListByUser(identity.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	total, today := readingSeconds(sessions, s.now())

	recent, err := s.recentReading(identity.Username)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Name:                name,
		TotalPurchased:      len(purchases),
		PurchasedBooks:      purchasedBooks,
		TotalViewed:         viewed,
		TotalReadingSeconds: total,
		TodayReadingSeconds: today,
		RecentReading:       recent,
	}, nil
}

func (s *ReadingService) displayName(identity *auth.Identity) (string, error) {
	if identity.IsBuiltin() {
		return identity.Username, nil
	}
	user, err := s.users.GetByHandle(identity.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	return user.Name, nil
}

// recentReading joins the latest sessions with their books.
// Sessions whose book has been deleted are skipped.
func (s *ReadingService) recentReading(username string) ([]RecentSession, error) {
	sessions, err := s.sessions.Recent(username, recentSessionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent sessions: %w", err)
	}

	ids := make([]uint, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.BookID)
	}
	books, err := s.books.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent books: %w", err)
	}
	byID := make(map[uint]entities.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	recent := make([]RecentSession, 0, len(sessions))
	for _, session := range sessions {
		book, ok := byID[session.BookID]
		if !ok {
			continue
		}
		recent = append(recent, RecentSession{
			BookID:          book.ID,
			Title:           book.Title,
			Author:          book.Author,
			DurationSeconds: session.DurationSeconds,
			StartedAt:       session.StartedAt,
			EndedAt:         session.EndedAt,
		})
	}
	return recent, nil
}

// readingSeconds sums the durations of stopped sessions over all time and for
// the calendar day of now. Open sessions have no duration yet.
func readingSeconds(sessions []entities.ReadingSession, now time.Time) (total, today int) {
	year, month, day := now.Date()
	for _, session := range sessions {
		if session.IsOpen() {
			continue
		}
		total += session.DurationSeconds
		y, m, d := session.StartedAt.In(now.Location()).Date()
		if y == year && m == month && d == day {
			today += session.DurationSeconds
		}
	}
	return total, today
}
