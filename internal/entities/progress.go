package entities

import "time"

type ActionType string

const (
	ActionTypeBuy  ActionType = "buy"
	ActionTypeRead ActionType = "read"
)

// ProgressEntry is one row of the append-only purchase/view ledger.
// The composite unique index makes every (user, book, action) triple appear at most once.
type ProgressEntry struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Username   string     `gorm:"uniqueIndex:idx_progress_user_book_action;size:64" json:"username"`
	BookID     uint       `gorm:"uniqueIndex:idx_progress_user_book_action;index" json:"book_id"`
	ActionType ActionType `gorm:"uniqueIndex:idx_progress_user_book_action;size:10" json:"action_type"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (ProgressEntry) TableName() string {
	return "user_progress"
}
