package entities

import "time"

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"   // Moderates books and manages users
	UserRoleCreator UserRole = "creator" // Publishes books
	UserRoleUser    UserRole = "user"    // Reads and purchases books
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleCreator, UserRoleUser:
		return true
	}
	return false
}

// User is a persisted account. Handle is the external identifier that tokens,
// books, ledger entries and comments refer to.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Handle      string    `gorm:"column:user_id;uniqueIndex;size:64" json:"user_id"`
	Name        string    `gorm:"index;size:255" json:"name"`
	Email       string    `gorm:"uniqueIndex;size:255" json:"email"`
	PhoneNumber string    `gorm:"size:50" json:"phone_number"`
	Password    string    `gorm:"size:255" json:"-"` // plaintext unless AUTH_PASSWORD_MODE=bcrypt
	Role        UserRole  `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
