// Package users provides database operations for persisted accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByHandle(handle)
package users

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetByHandle retrieves a user by external handle.
func (r *Repository) GetByHandle(handle string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("user_id = ?", handle).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByHandleOrName retrieves a user whose handle or display name equals login.
// A handle match wins over a name match.
func (r *Repository) GetByHandleOrName(login string) (*entities.User, error) {
	user, err := r.GetByHandle(login)
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, err
	}

	var byName entities.User
	err = r.db.Where("name = ?", login).Order("id ASC").First(&byName).Error
	if err != nil {
		return nil, err
	}
	return &byName, nil
}

// ExistsByHandleOrEmail reports whether a user with the handle or email exists.
func (r *Repository) ExistsByHandleOrEmail(handle, email string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).
		Where("user_id = ? OR email = ?", handle, email).
		Count(&count).Error
	return count > 0, err
}

// List returns all persisted users ordered by ID.
func (r *Repository) List() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

// Count returns the number of persisted users.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}

// NamesByHandles maps each known handle to its display name.
func (r *Repository) NamesByHandles(handles []string) (map[string]string, error) {
	names := make(map[string]string, len(handles))
	if len(handles) == 0 {
		return names, nil
	}

	var users []entities.User
	err := r.db.Select("user_id", "name").Where("user_id IN ?", handles).Find(&users).Error
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.Handle] = u.Name
	}
	return names, nil
}
