// Package progress stores the append-only purchase/view ledger.
//
// A "buy" entry is the only evidence of a purchase; a "read" entry records that a
// user opened a book at least once. Both are written at most once per (user, book).
package progress

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/libris/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record appends an entry unless the same (username, book, action) already exists.
// Returns true when a new row was written.
func (r *Repository) Record(username string, bookID uint, action entities.ActionType) (bool, error) {
	entry := &entities.ProgressEntry{
		Username:   username,
		BookID:     bookID,
		ActionType: action,
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the ledger holds the given entry.
func (r *Repository) Exists(username string, bookID uint, action entities.ActionType) (bool, error) {
	var count int64
	err := r.db.Model(&entities.ProgressEntry{}).
		Where("username = ? AND book_id = ? AND action_type = ?", username, bookID, action).
		Count(&count).Error
	return count > 0, err
}

// ListByAction returns a user's entries of one action type, oldest first.
func (r *Repository) ListByAction(username string, action entities.ActionType) ([]entities.ProgressEntry, error) {
	entries := []entities.ProgressEntry{}
	err := r.db.Where("username = ? AND action_type = ?", username, action).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// CountByAction returns how many entries of one action type a user has.
func (r *Repository) CountByAction(username string, action entities.ActionType) (int64, error) {
	var count int64
	err := r.db.Model(&entities.ProgressEntry{}).
		Where("username = ? AND action_type = ?", username, action).
		Count(&count).Error
	return count, err
}
