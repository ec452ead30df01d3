package audit

import (
	"fmt"
	"log"

	"github.com/mrlokans/libris/internal/database/audit"
	"github.com/mrlokans/libris/internal/entities"
)

const maxErrorLen = 500

// Service provides high-level audit logging functionality.
// Recording failures are logged and never returned to the caller.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) record(event *entities.AuditEvent, err error) {
	if s == nil {
		return
	}
	if event.Status == "" {
		event.Status = entities.AuditStatusSuccess
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}
	if logErr := s.repo.LogEvent(event); logErr != nil {
		log.Printf("Failed to log audit event %s: %v", event.Action, logErr)
	}
}

// LogAuth records a login attempt.
func (s *Service) LogAuth(username, ipAddr string, success bool) {
	event := &entities.AuditEvent{
		Username:  username,
		EventType: entities.AuditEventAuth,
		Action:    "login",
		IPAddress: ipAddr,
		Status:    entities.AuditStatusSuccess,
	}
	if !success {
		event.Status = entities.AuditStatusFailed
	}
	s.record(event, nil)
}

// LogRegister records a self-service registration.
func (s *Service) LogRegister(handle, email, ipAddr string, err error) {
	s.record(&entities.AuditEvent{
		Username:    handle,
		EventType:   entities.AuditEventRegister,
		Action:      "user_register",
		Description: "Registered " + email,
		EntityType:  "user",
		IPAddress:   ipAddr,
	}, err)
}

// LogPublish records a creator creating or editing a book.
func (s *Service) LogPublish(username, action string, bookID uint, title string, err error) {
	event := &entities.AuditEvent{
		Username:    username,
		EventType:   entities.AuditEventPublish,
		Action:      action,
		Description: fmt.Sprintf("%s: %s", action, title),
		EntityType:  "book",
	}
	if bookID > 0 {
		event.EntityID = &bookID
	}
	s.record(event, err)
}

// LogModeration records an admin approving, rejecting or deleting a book.
func (s *Service) LogModeration(username, action string, bookID uint, err error) {
	s.record(&entities.AuditEvent{
		Username:    username,
		EventType:   entities.AuditEventModeration,
		Action:      action,
		Description: fmt.Sprintf("%s on book %d", action, bookID),
		EntityType:  "book",
		EntityID:    &bookID,
	}, err)
}

// LogPurchase records a purchase. Repeat purchases are recorded as no-ops.
func (s *Service) LogPurchase(username string, bookID uint, created bool) {
	description := "Purchased book"
	if !created {
		description = "Already purchased"
	}
	s.record(&entities.AuditEvent{
		Username:    username,
		EventType:   entities.AuditEventPurchase,
		Action:      "book_pay",
		Description: description,
		EntityType:  "book",
		EntityID:    &bookID,
	}, nil)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(filter audit.EventFilter) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(filter)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
