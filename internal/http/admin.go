package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libris/internal/audit"
	"github.com/mrlokans/libris/internal/auth"
	auditrepo "github.com/mrlokans/libris/internal/database/audit"
	"github.com/mrlokans/libris/internal/entities"
	"github.com/mrlokans/libris/internal/services"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

type AdminSummaryResponse struct {
	Stats *services.AdminStats `json:"stats"`
}

type AuditEventsResponse struct {
	Events []entities.AuditEvent `json:"events"`
	Total  int64                 `json:"total"`
	Page   int                   `json:"page"`
	Limit  int                   `json:"limit"`
}

// AdminController serves moderation and user management routes.
type AdminController struct {
	admin *services.AdminService
	audit *audit.Service
}

func NewAdminController(admin *services.AdminService, auditService *audit.Service) *AdminController {
	return &AdminController{admin: admin, audit: auditService}
}

func (ac *AdminController) Summary(c *gin.Context) {
	stats, err := ac.admin.Summary()
	if err != nil {
		respondServiceError(c, err, "admin summary")
		return
	}
	c.JSON(http.StatusOK, AdminSummaryResponse{Stats: stats})
}

func (ac *AdminController) Users(c *gin.Context) {
	users, err := ac.admin.Users()
	if err != nil {
		respondServiceError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ac *AdminController) Books(c *gin.Context) {
	books, err := ac.admin.Books()
	if err != nil {
		respondServiceError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (ac *AdminController) Approve(c *gin.Context) {
	ac.moderate(c, "book_approve", ac.admin.Approve, "Book approved successfully")
}

func (ac *AdminController) Reject(c *gin.Context) {
	ac.moderate(c, "book_reject", ac.admin.Reject, "Book rejected")
}

func (ac *AdminController) Delete(c *gin.Context) {
	ac.moderate(c, "book_delete", ac.admin.Delete, "Book deleted permanently")
}

func (ac *AdminController) moderate(c *gin.Context, action string, apply func(uint) error, message string) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	err := apply(bookID)
	ac.audit.LogModeration(auth.GetIdentity(c).Username, action, bookID, err)
	if err != nil {
		respondServiceError(c, err, action)
		return
	}
	respondMessage(c, message)
}

// AuditEvents lists recorded events, newest first.
// Query: page (1-based), limit, type, username.
func (ac *AdminController) AuditEvents(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		respondBadRequest(c, "invalid page")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditPageSize)))
	if err != nil || limit < 1 {
		respondBadRequest(c, "invalid limit")
		return
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	events, total, err := ac.audit.GetEvents(auditrepo.EventFilter{
		Username:  c.Query("username"),
		EventType: entities.AuditEventType(c.Query("type")),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, AuditEventsResponse{
		Events: events,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}
