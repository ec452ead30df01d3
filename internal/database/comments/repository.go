// Package comments stores threaded comment rows. Tree assembly happens in the
// services layer from the flat rows returned here.
package comments

import (
	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new comment.
func (r *Repository) Create(comment *entities.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID retrieves a comment by ID.
func (r *Repository) GetByID(id uint) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevel returns the comments on a book that are not replies, newest first.
func (r *Repository) ListTopLevel(bookID uint) ([]entities.Comment, error) {
	comments := []entities.Comment{}
	err := r.db.Where("book_id = ? AND parent_id IS NULL", bookID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}

// ListByParents returns every reply whose parent is in parentIDs, regardless of book.
func (r *Repository) ListByParents(parentIDs []uint) ([]entities.Comment, error) {
	comments := []entities.Comment{}
	if len(parentIDs) == 0 {
		return comments, nil
	}
	err := r.db.Where("parent_id IN ?", parentIDs).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}
