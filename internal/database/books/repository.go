// Package books provides database operations for books and their moderation status.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// Update persists every field of an existing book.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Save(book).Error
}

// GetByID retrieves a book by its ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByIDs retrieves all books whose ID is in ids. Unknown IDs are skipped.
func (r *Repository) GetByIDs(ids []uint) ([]entities.Book, error) {
	books := []entities.Book{}
	if len(ids) == 0 {
		return books, nil
	}
	err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&books).Error
	return books, err
}

// UpdateStatus sets the moderation status of a book.
// Returns gorm.ErrRecordNotFound if no book has that ID.
func (r *Repository) UpdateStatus(id uint, status entities.BookStatus) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete permanently removes a book together with its comments, ledger entries
// and reading sessions.
// Returns gorm.ErrRecordNotFound if no book has that ID.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		for _, model := range []any{&entities.Comment{}, &entities.ProgressEntry{}, &entities.ReadingSession{}} {
			if err := tx.Where("book_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns every book regardless of status.
func (r *Repository) List() ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// ListByStatus returns the books in the given moderation status.
func (r *Repository) ListByStatus(status entities.BookStatus) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.Where("status = ?", status).Order("id ASC").Find(&books).Error
	return books, err
}

// ListByCreator returns the books owned by a creator handle.
func (r *Repository) ListByCreator(creatorID string) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.Where("creator_id = ?", creatorID).Order("id ASC").Find(&books).Error
	return books, err
}

// Count returns the total number of books.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of books in the given status.
func (r *Repository) CountByStatus(status entities.BookStatus) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
