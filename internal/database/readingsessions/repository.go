// Package readingsessions stores start/stop reading intervals.
package readingsessions

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Start opens a new session. Earlier open sessions for the same pair are left untouched.
func (r *Repository) Start(username string, bookID uint, startedAt time.Time) (*entities.ReadingSession, error) {
	session := &entities.ReadingSession{
		Username:  username,
		BookID:    bookID,
		StartedAt: startedAt,
	}
	if err := r.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// LatestOpen returns the most recently started open session for a user and book.
// Returns gorm.ErrRecordNotFound when none is open.
func (r *Repository) LatestOpen(username string, bookID uint) (*entities.ReadingSession, error) {
	var session entities.ReadingSession
	err := r.db.Where("username = ? AND book_id = ? AND ended_at IS NULL", username, bookID).
		Order("started_at DESC").
		Order("id DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Close sets the end time and duration of a session.
func (r *Repository) Close(id uint, endedAt time.Time, durationSeconds int) error {
	return r.db.Model(&entities.ReadingSession{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ended_at":         endedAt,
			"duration_seconds": durationSeconds,
		}).Error
}

// ListByUser returns every session of a user.
func (r *Repository) ListByUser(username string) ([]entities.ReadingSession, error) {
	sessions := []entities.ReadingSession{}
	err := r.db.Where("username = ?", username).Order("id ASC").Find(&sessions).Error
	return sessions, err
}

// Recent returns the user's most recently started sessions, newest first.
func (r *Repository) Recent(username string, limit int) ([]entities.ReadingSession, error) {
	sessions := []entities.ReadingSession{}
	err := r.db.Where("username = ?", username).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
