package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type RegisterInput struct {
	// Handle is generated when empty.
	Handle      string
	Name        string
	Email       string
	PhoneNumber string
	Password    string
	Role        entities.UserRole
}

// RegistrationService creates persisted accounts.
type RegistrationService struct {
	users     UserStore
	passwords auth.PasswordScheme
}

func NewRegistrationService(users UserStore, passwords auth.PasswordScheme) *RegistrationService {
	return &RegistrationService{users: users, passwords: passwords}
}

// Register creates a reader account with a generated handle.
func (s *RegistrationService) Register(in RegisterInput) (*entities.User, error) {
	in.Handle = ""
	in.Role = entities.UserRoleUser
	return s.CreateUser(in)
}

// CreateUser creates an account with any role. Built-in account names are reserved.
func (s *RegistrationService) CreateUser(in RegisterInput) (*entities.User, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	handle := in.Handle
	if handle == "" {
		handle = uuid.NewString()
	}
	if auth.IsBuiltinUsername(handle) {
		return nil, newError(ErrConflict, "user id is reserved")
	}

	exists, err := s.users.ExistsByHandleOrEmail(handle, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	password, err := s.passwords.Encode(in.Password)
	if err != nil {
		return nil, newError(ErrInvalidInput, err.Error())
	}

	user := &entities.User{
		Handle:      handle,
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    password,
		Role:        in.Role,
	}
	if err := s.users.Create(user); err != nil {
		// A concurrent registration can pass the existence check first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func validateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return newError(ErrInvalidInput, "name is required")
	}
	if in.Password == "" {
		return newError(ErrInvalidInput, "password is required")
	}
	// RFC 5321 limit is 254
	if len(in.Email) > 254 || !emailPattern.MatchString(in.Email) {
		return newError(ErrInvalidInput, "invalid email format")
	}
	if !in.Role.Valid() {
		return newError(ErrInvalidInput, "invalid role")
	}
	return nil
}
