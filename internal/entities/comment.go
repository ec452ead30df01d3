package entities

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    string    `gorm:"index;size:64" json:"user_id"` // author handle
	BookID    uint      `gorm:"index" json:"book_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // nil for top-level comments
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
