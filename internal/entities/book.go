package entities

import "time"

type BookStatus string

const (
	BookStatusPending  BookStatus = "pending"
	BookStatusApproved BookStatus = "approved"
	BookStatusRejected BookStatus = "rejected"
)

// Valid reports whether s is one of the three moderation states.
func (s BookStatus) Valid() bool {
	switch s {
	case BookStatusPending, BookStatusApproved, BookStatusRejected:
		return true
	}
	return false
}

type Book struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"index;size:512" json:"title"`
	Author    string     `gorm:"size:256" json:"author"`
	Theme     *string    `gorm:"size:100" json:"theme"`
	Content   string     `gorm:"type:text" json:"content"`
	Price     float64    `gorm:"default:0" json:"price"`
	IsPremium bool       `gorm:"default:false" json:"is_premium"`
	Status    BookStatus `gorm:"index;size:20;default:'pending'" json:"status"`
	CreatorID string     `gorm:"index;size:64" json:"creator_id"` // owning creator's handle
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
