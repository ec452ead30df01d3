package audit

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/mrlokans/libris/internal/database/audit"
	"github.com/mrlokans/libris/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func TestService_LogAuth(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogAuth("admin", "127.0.0.1", true)
	svc.LogAuth("mallory", "10.0.0.1", false)

	var events []entities.AuditEvent
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
	assert.Equal(t, "127.0.0.1", events[0].IPAddress)
	assert.Equal(t, entities.AuditStatusFailed, events[1].Status)
	assert.Equal(t, "mallory", events[1].Username)
}

func TestService_LogModeration(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("success", func(t *testing.T) {
		svc.LogModeration("admin", "book_approve", 7, nil)

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ?", "book_approve").First(&event).Error)
		assert.Equal(t, entities.AuditEventModeration, event.EventType)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, uint(7), *event.EntityID)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	})

	t.Run("failure", func(t *testing.T) {
		svc.LogModeration("admin", "book_delete", 8, errors.New(strings.Repeat("x", 600)))

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ?", "book_delete").First(&event).Error)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Len(t, event.ErrorMsg, maxErrorLen)
	})
}

func TestService_LogPublishAndPurchase(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogPublish("creator", "book_create", 3, "Dune", nil)
	svc.LogPurchase("user", 3, true)
	svc.LogPurchase("user", 3, false)
	svc.LogRegister("h-1", "a@example.com", "", nil)

	events, total, err := svc.GetEvents(auditRepo.EventFilter{EventType: entities.AuditEventPurchase})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	descriptions := []string{events[0].Description, events[1].Description}
	assert.ElementsMatch(t, []string{"Purchased book", "Already purchased"}, descriptions)

	_, total, err = svc.GetEvents(auditRepo.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestService_NilIsNoop(t *testing.T) {
	var svc *Service
	assert.NotPanics(t, func() {
		svc.LogAuth("admin", "", true)
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.input, tt.maxLen))
		})
	}
}
