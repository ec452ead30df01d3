package entities

import "time"

// ReadingSession is a single start/stop reading interval. EndedAt is nil while open.
type ReadingSession struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Username        string     `gorm:"index:idx_session_user_book;size:64" json:"username"`
	BookID          uint       `gorm:"index:idx_session_user_book" json:"book_id"`
	StartedAt       time.Time  `gorm:"index" json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	DurationSeconds int        `gorm:"default:0" json:"duration_seconds"`
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}

// IsOpen returns true if the session has not been stopped yet.
func (s *ReadingSession) IsOpen() bool {
	return s.EndedAt == nil
}
